// Package command implements the operator edit flow: one inbound text
// message is authorized, parsed, validated, applied to the roster, and
// answered. The whole flow is a small state machine with four terminal
// states, kept as a tagged Outcome so callers and tests can branch
// exhaustively without a live transport.
//
// Command shape: <YYYY-MM-DD> <full name tokens...> <new value>
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/St3r30X/any-bot/grid"
	"github.com/St3r30X/any-bot/sheets"
)

// Kind is the terminal state of processing one message.
type Kind int

const (
	// Ignored: the sender is not allow-listed. Nothing is sent back, so
	// strangers cannot probe for the bot's presence.
	Ignored Kind = iota
	// Usage: the command was malformed; Reply holds a corrective message.
	Usage
	// Rejected: validation or apply failed; Reply holds the reason.
	Rejected
	// Applied: the cell was written; Reply holds the confirmation.
	Applied
)

// Outcome is what processing one message produced. Reply is empty only for
// Ignored.
type Outcome struct {
	Kind  Kind
	Reply string
}

var (
	// ErrDateNotFound means no header column normalizes to the requested
	// date.
	ErrDateNotFound = errors.New("date not found")
	// ErrPersonNotFound means no person row carries the requested name.
	ErrPersonNotFound = errors.New("person not found")
)

const usageReply = "Usage: <YYYY-MM-DD> <full name> <new value>"

// Processor validates and applies a single edit request against the grid
// service. It performs no snapshot mutation itself; the caller runs a diff
// cycle after an Applied outcome.
type Processor struct {
	grid    sheets.Service
	allowed map[string]struct{}
	logger  *slog.Logger
}

// NewProcessor creates a Processor. editors is the static allow-list of
// sender identities (usernames or numeric ids, as the messenger reports
// them).
func NewProcessor(svc sheets.Service, editors []string, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]struct{}, len(editors))
	for _, e := range editors {
		allowed[strings.TrimPrefix(e, "@")] = struct{}{}
	}
	return &Processor{grid: svc, allowed: allowed, logger: logger}
}

// Allowed reports whether sender may issue commands.
func (p *Processor) Allowed(sender string) bool {
	_, ok := p.allowed[strings.TrimPrefix(sender, "@")]
	return ok
}

// Handle runs one message through the state machine. Order matters:
// authorization first (silent), then shape, then date format, then
// resolution against a fresh grid, then the write.
func (p *Processor) Handle(ctx context.Context, sender, text string) Outcome {
	if !p.Allowed(sender) {
		return Outcome{Kind: Ignored}
	}

	fields := strings.Fields(text)
	if len(fields) < 3 {
		return Outcome{Kind: Usage, Reply: usageReply}
	}

	date := fields[0]
	if !grid.ValidDate(date) {
		return Outcome{Kind: Usage, Reply: fmt.Sprintf("Bad date %q, expected YYYY-MM-DD.\n%s", date, usageReply)}
	}

	value := fields[len(fields)-1]
	name := strings.Join(fields[1:len(fields)-1], " ")

	g, err := p.grid.Read(ctx)
	if err != nil {
		p.logger.Error("command: grid read failed", "error", err)
		return Outcome{Kind: Rejected, Reply: "Could not read the roster, try again later."}
	}

	row, col, err := locate(g, date, name)
	if err != nil {
		return Outcome{Kind: Rejected, Reply: rejectionReply(err, date, name)}
	}

	addr := grid.Addr(row, col)
	if err := p.grid.WriteCell(ctx, addr, value); err != nil {
		p.logger.Error("command: write failed", "addr", addr, "error", err)
		return Outcome{Kind: Rejected, Reply: "Could not update the roster, try again later."}
	}

	p.logger.Info("command: cell updated",
		"sender", sender, "date", date, "name", name, "addr", addr, "value", value)
	return Outcome{
		Kind:  Applied,
		Reply: fmt.Sprintf("Done: %s is %q on %s.", name, value, date),
	}
}

// locate resolves the target cell: the column whose normalized header date
// equals date, and the row whose name column equals name exactly.
func locate(g grid.Grid, date, name string) (row, col int, err error) {
	col = -1
	for c := grid.FirstDutyCol; c < len(g.Row(grid.HeaderRow)); c++ {
		if nd := g.HeaderDate(c); nd != grid.NoDate && nd == date {
			col = c
			break
		}
	}
	if col < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrDateNotFound, date)
	}

	for r := grid.FirstPersonRow; r < len(g); r++ {
		if g.Name(r) == name {
			return r, col, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %s", ErrPersonNotFound, name)
}

func rejectionReply(err error, date, name string) string {
	switch {
	case errors.Is(err, ErrDateNotFound):
		return fmt.Sprintf("Date %s is not in the roster.", date)
	case errors.Is(err, ErrPersonNotFound):
		return fmt.Sprintf("Person %q is not in the roster.", name)
	default:
		return err.Error()
	}
}
