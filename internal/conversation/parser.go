// Package conversation turns operator input into commands and delivers
// notifications to the terminal.
package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches operator input to commands using keywords and
// simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// Argument forms. Matched before the bare keywords.
var (
	entryRe = regexp.MustCompile(`(?i)^(?:entry|in)\s+(\S+)$`)
	exitRe  = regexp.MustCompile(`(?i)^(?:exit|out)\s+(\S+)$`)
	itemRe  = regexp.MustCompile(`(?i)^(add|\+|rm|remove|-)\s+(\S+)\s+(\S+)$`)
	taxRe   = regexp.MustCompile(`(?i)^tax(?:\s+(\S+))?$`)
)

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(enter|admit|e)$`), domain.CommandEnter},
		{regexp.MustCompile(`(?i)^(clear-exit|clear exit|noexit)$`), domain.CommandClearExit},
		{regexp.MustCompile(`(?i)^(status|st|bill)$`), domain.CommandStatus},
		{regexp.MustCompile(`(?i)^(menu|m)$`), domain.CommandMenu},
		{regexp.MustCompile(`(?i)^(receipt|r)$`), domain.CommandReceipt},
		{regexp.MustCompile(`(?i)^(checkout|pay|settle)$`), domain.CommandCheckout},
		{regexp.MustCompile(`(?i)^(history|ledger)$`), domain.CommandHistory},
		{regexp.MustCompile(`(?i)^(reset|clear)$`), domain.CommandReset},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^(quit|q|bye)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts operator input into a command. Recognised commands with
// bad arguments return an error wrapping domain.ErrBadCommand, or the
// more specific domain error for the argument.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	if m := entryRe.FindStringSubmatch(trimmed); m != nil {
		return &domain.Command{Type: domain.CommandSetEntry, Payload: m[1]}, nil
	}
	if m := exitRe.FindStringSubmatch(trimmed); m != nil {
		return &domain.Command{Type: domain.CommandSetExit, Payload: m[1]}, nil
	}
	if m := itemRe.FindStringSubmatch(trimmed); m != nil {
		return parseItem(m[1], m[2], m[3])
	}
	if m := taxRe.FindStringSubmatch(trimmed); m != nil {
		if m[1] != "" {
			if _, err := domain.ParseTaxMode(m[1]); err != nil {
				return nil, fmt.Errorf("parsing tax command: %w", err)
			}
		}
		return &domain.Command{Type: domain.CommandTax, Payload: strings.ToLower(m[1])}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched command: %s", rule.command)
			return &domain.Command{Type: rule.command}, nil
		}
	}

	// Bare argument commands are recognised so the caller can show usage.
	switch strings.ToLower(trimmed) {
	case "entry", "exit", "add", "rm", "remove":
		return nil, fmt.Errorf("%w: %q needs arguments", domain.ErrBadCommand, trimmed)
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}

func parseItem(verb, category, price string) (*domain.Command, error) {
	cmd := &domain.Command{Type: domain.CommandAddItem}
	switch strings.ToLower(verb) {
	case "rm", "remove", "-":
		cmd.Type = domain.CommandRemoveItem
	}

	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cmd.Type, err)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(price, "¥"))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: price %q", domain.ErrBadCommand, price)
	}

	cmd.Category = cat
	cmd.Price = n
	return cmd, nil
}
