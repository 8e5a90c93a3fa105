// Package parser reads line-delimited JSON conversation logs.
package parser

import (
	"bufio"
	"encoding/json"
	"log"
	"math"
	"os"
	"strings"

	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
)

// ParseFile reads a JSONL file and returns its records in file order, each
// annotated with its 1-based line number. Lines that fail to decode are
// logged and skipped; blank lines are skipped silently. A file with no valid
// records yields an empty slice, not an error.
func ParseFile(filename string) ([]models.LogRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []models.LogRecord
	scanner := bufio.NewScanner(file)
	// No maximum line size; tool results can be arbitrarily large.
	buf := make([]byte, 0, constants.DefaultScannerBufferSize)
	scanner.Buffer(buf, math.MaxInt)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec models.LogRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("warning: %s: skipping line %d: %v", filename, lineNum, err)
			continue
		}
		rec.LineNumber = lineNum
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
