// Package wordlist loads and normalizes word lists.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
)

// LoadWords reads one word per line from the provided file path. Blank lines
// and lines starting with # are skipped, surrounding whitespace is trimmed
// and duplicates keep their first position.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word, ok := Normalize(scanner.Text())
		if !ok || seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
