package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"campaignSheets/contracts"
)

// cellIdRegex matches the reference grammar: column letters followed by a
// 1-based row number. https://regex101.com/r/1XgP7w/1
var cellIdRegex = regexp.MustCompile(`^([A-Z]+)([1-9][0-9]*)$`)

const columnLetterCount = 26

// maxColumnLetters keeps the column decode well inside int range.
const maxColumnLetters = 7

// CanonicalizeCellId normalizes a textual reference to its canonical form,
// "b2" -> "B2". Canonical ids are the keys of the cell store and the
// dependency graph.
func CanonicalizeCellId(cellId string) string {
	return strings.ToUpper(strings.TrimSpace(cellId))
}

// ParseCellId decodes a canonical A1-style name into a zero-based
// (row, column) position. "B2" -> (1, 1).
func ParseCellId(cellId string) (row int, column int, err error) {
	match := cellIdRegex.FindStringSubmatch(CanonicalizeCellId(cellId))
	if match == nil || len(match[1]) > maxColumnLetters {
		return 0, 0, fmt.Errorf("%s: %w", cellId, contracts.InvalidCellIdError)
	}

	for _, letter := range match[1] {
		column = column*columnLetterCount + int(letter-'A') + 1
	}
	column--

	rowNumber, convErr := strconv.Atoi(match[2])
	if convErr != nil {
		return 0, 0, fmt.Errorf("%s: %w", cellId, contracts.InvalidCellIdError)
	}
	row = rowNumber - 1

	return row, column, nil
}

// IsCellId reports whether the token matches the reference grammar at all.
func IsCellId(token string) bool {
	match := cellIdRegex.FindStringSubmatch(token)
	return match != nil && len(match[1]) <= maxColumnLetters
}

// CellName is the inverse of ParseCellId: (1, 1) -> "B2".
func CellName(row int, column int) string {
	return ColumnName(column) + strconv.Itoa(row+1)
}

// ColumnName generates the stable display name of a column position:
// 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnName(column int) string {
	name := make([]byte, 0, maxColumnLetters)
	for column >= 0 {
		name = append(name, byte('A'+column%columnLetterCount))
		column = column/columnLetterCount - 1
	}

	for left, right := 0, len(name)-1; left < right; left, right = left+1, right-1 {
		name[left], name[right] = name[right], name[left]
	}
	return string(name)
}
