/*
History Module - Calculation History Management
===============================================

This module provides persistent storage and retrieval of calculation history
using JSON serialization. All calculations are stored in a local file and
can be displayed to the user for reference.

The history system:
- Automatically saves each successful calculation
- Persists data across program sessions
- Displays results in reverse chronological order (newest first)
- Handles file I/O errors gracefully
- Uses structured JSON format for data integrity

File format: Array of Entry objects in JSON format
Location: history.json in the current working directory
*/

package history

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"Axion/expr"
)

// JsonFloat is a result value that marshals ±Inf and NaN as the strings
// "+∞", "-∞" and "NaN", which plain JSON numbers cannot hold.
type JsonFloat float64

func (f JsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)

	if math.IsInf(v, 1) {
		return json.Marshal("+∞")
	}
	if math.IsInf(v, -1) {
		return json.Marshal("-∞")
	}
	if math.IsNaN(v) {
		return json.Marshal("NaN")
	}
	return json.Marshal(v)
}

// Entry represents a single calculation record in the history
type Entry struct {
	Expression string    `json:"expression"`           // Original mathematical expression, as typed
	Normalized string    `json:"normalized,omitempty"` // Pretty-printed form of the parsed expression
	Result     JsonFloat `json:"result"`               // Computed numerical result
}

// DefaultFile is where AddHistory and ShowHistory persist entries.
const DefaultFile = "history.json"

// AddHistory appends a new calculation to the persistent history file.
// parsed is the expression tree the input produced; its String() form
// is stored alongside the raw input so history also records how the
// parser actually read the expression (spec.md §8 invariant 10).
func AddHistory(input string, parsed expr.Expression, result float64) error {
	return AddHistoryAt(DefaultFile, input, parsed, result)
}

// AddHistoryAt is AddHistory against an explicit file path.
// Handles file creation and existing data preservation; the whole file
// is rewritten in place with os.WriteFile (not an atomic replace)
func AddHistoryAt(path, input string, parsed expr.Expression, result float64) error {
	history, err := loadEntries(path)
	if err != nil {
		return err
	}

	normalized := ""
	if parsed != nil {
		normalized = parsed.String()
	}

	// Create new history entry
	entry := Entry{Expression: input, Normalized: normalized, Result: JsonFloat(result)}

	// Append new entry to existing history
	history = append(history, entry)

	// Serialize updated history with readable formatting
	updatedContent, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		// Return error for serialization failure
		return err
	}

	// Write updated history to file with appropriate permissions
	err = os.WriteFile(path, updatedContent, 0644)
	if err != nil {
		// Return error for write failure
		return err
	}

	return nil
}

// loadEntries reads and parses a history file. A missing file yields
// an empty, non-error history.
func loadEntries(path string) ([]Entry, error) {
	var history []Entry

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return history, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &history); err != nil {
			// Return error for malformed JSON data
			return nil, err
		}
	}
	return history, nil
}

// ShowHistory displays the complete calculation history in reverse order
// Most recent calculations are shown first for better user experience
func ShowHistory() error {
	return ShowHistoryAt(DefaultFile)
}

// ShowHistoryAt is ShowHistory against an explicit file path.
func ShowHistoryAt(path string) error {
	history, err := loadEntries(path)
	if err != nil {
		// Return error for malformed JSON
		return err
	}

	// Handle empty history case
	if len(history) == 0 {
		fmt.Println("no history data")
		return nil
	}

	// Display history in reverse chronological order (newest first)
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		fmt.Printf("------------------------------------------------\n")
		fmt.Printf(" Expression : %s\n", entry.Expression)
		if entry.Normalized != "" && entry.Normalized != entry.Expression {
			fmt.Printf(" Parsed as  : %s\n", entry.Normalized)
		}
		fmt.Printf(" Result     : %g\n", entry.Result)
		fmt.Printf("------------------------------------------------\n\n")
	}

	return nil
}
