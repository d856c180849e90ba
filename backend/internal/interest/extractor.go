package interest

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"lovemining/backend/pkg/logger"
)

// Extractor maps free text to a set of canonical interest tags. The dictionary
// is loaded once from a CSV where each line is
//
//	Display Name;variant1,variant2,...
//
// and every variant maps back to the display name. Matching is
// case-insensitive on word boundaries, so "ski" never fires inside "skills".
type Extractor struct {
	patterns []variantPattern
	logger   *zap.Logger
}

type variantPattern struct {
	re          *regexp.Regexp
	displayName string
}

// NewExtractor loads the interest dictionary from the given CSV path
func NewExtractor(csvPath string) (*Extractor, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open interests file: %w", err)
	}
	defer file.Close()

	ex := &Extractor{logger: logger.Get()}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ";", 2)
		if len(parts) < 2 {
			continue
		}

		displayName := strings.TrimSpace(parts[0])
		for _, variant := range strings.Split(parts[1], ",") {
			variant = strings.ToLower(strings.TrimSpace(variant))
			if variant == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(variant) + `\b`)
			if err != nil {
				continue
			}
			ex.patterns = append(ex.patterns, variantPattern{re: re, displayName: displayName})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interests file: %w", err)
	}

	ex.logger.Info("Interest dictionary loaded",
		zap.String("path", csvPath),
		zap.Int("variants", len(ex.patterns)),
	)
	return ex, nil
}

// Extract returns the sorted set of canonical tags found in the text
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	for _, p := range e.patterns {
		if seen[p.displayName] {
			continue
		}
		if p.re.MatchString(lower) {
			seen[p.displayName] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
