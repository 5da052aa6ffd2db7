package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/staytab/internal/display"
	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/engine"
	"github.com/hammamikhairi/staytab/internal/logger"
	"github.com/hammamikhairi/staytab/internal/notice"
	"github.com/hammamikhairi/staytab/internal/timer"
)

// output is the slice of display.UI the REPL writes to.
type output interface {
	Println(a ...interface{})
	PrintHeader(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintNotice(text string, blocking bool)
	PrintBlock(lines []string)
	InputChan() <-chan string
}

var _ output = (*display.UI)(nil)

type cliApp struct {
	engine  *engine.Engine
	parser  domain.CommandParser
	watcher *timer.Watcher
	log     *logger.Logger
	ui      output
	now     func() time.Time
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintHint("No guest yet. Type 'enter' when one arrives.")

	uiCh := a.ui.InputChan()
	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		if !a.dispatch(ctx, input) {
			return
		}
	}
}

// dispatch parses and runs one line. It returns false on quit.
func (a *cliApp) dispatch(ctx context.Context, input string) bool {
	cmd, err := a.parser.Parse(ctx, input)
	if err != nil {
		a.log.Debug("parsing input: %v", err)
		a.ui.PrintUrgent(parseErrorLine(err))
		return true
	}

	a.log.Debug("command: %s (payload=%q)", cmd.Type, cmd.Payload)
	return a.handle(ctx, cmd)
}

func (a *cliApp) handle(ctx context.Context, cmd *domain.Command) bool {
	now := a.now()

	switch cmd.Type {
	case domain.CommandEnter:
		n, err := a.engine.Admit(ctx, now)
		if !a.reportNotice(n, err) {
			return true
		}
		a.ui.PrintLine("Admitted at " + now.Format("15:04") + ".")
	case domain.CommandSetEntry:
		n, err := a.engine.SetEntryTime(cmd.Payload, now)
		if !a.reportNotice(n, err) {
			return true
		}
		a.ui.PrintLine("Entry time set to " + a.engine.Session().EntryTime.Format("01-02 15:04") + ".")
	case domain.CommandSetExit:
		n, err := a.engine.SetPlannedExit(cmd.Payload, now)
		if !a.reportNotice(n, err) {
			return true
		}
		a.ui.PrintLine("Planned exit set to " + a.engine.Session().PlannedExit.Format("15:04") + ".")
	case domain.CommandClearExit:
		a.engine.ClearPlannedExit()
		a.ui.PrintLine("Planned exit cleared; billing follows the clock.")
	case domain.CommandAddItem:
		if err := a.engine.AddItem(cmd.Category, cmd.Price); err != nil {
			a.ui.PrintNotice(a.engine.CurrentNotices().Shortage.Text, true)
			return true
		}
		a.ui.PrintLine(fmt.Sprintf("Added %s %s.", cmd.Category, display.Yen(cmd.Price)))
	case domain.CommandRemoveItem:
		if !a.engine.RemoveItem(cmd.Category, cmd.Price) {
			a.ui.PrintHint(fmt.Sprintf("No %s at %s selected.", cmd.Category, display.Yen(cmd.Price)))
			break
		}
		a.ui.PrintLine(fmt.Sprintf("Removed %s %s.", cmd.Category, display.Yen(cmd.Price)))
	case domain.CommandTax:
		a.setTax(cmd.Payload)
	case domain.CommandStatus:
		a.refresh(ctx, now)
		a.status(now)
		return true
	case domain.CommandMenu:
		a.menu()
		return true
	case domain.CommandReceipt:
		a.receipt(now)
		return true
	case domain.CommandCheckout:
		a.checkout(ctx, now)
	case domain.CommandHistory:
		a.history(ctx)
		return true
	case domain.CommandReset:
		a.engine.Reset()
		a.ui.PrintLine("Session reset.")
	case domain.CommandHelp:
		a.showHelp()
		return true
	case domain.CommandQuit:
		a.ui.PrintHint("Bye.")
		return false
	default:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", cmd.Payload))
		return true
	}

	a.refresh(ctx, now)
	return true
}

// refresh recomputes after an accepted mutation and lets the watcher see
// the result. Refused actions skip it, so their blocking notice stays on
// the status bar until the next tick.
func (a *cliApp) refresh(ctx context.Context, now time.Time) {
	a.watcher.Observe(ctx, a.engine.Recompute(now))
}

// reportNotice prints the outcome of an admission or time edit. It
// returns true when the action went through.
func (a *cliApp) reportNotice(n notice.Notice, err error) bool {
	if err != nil {
		a.log.Debug("action refused: %v", err)
		a.ui.PrintNotice(n.Text, true)
		return false
	}
	a.ui.PrintNotice(n.Text, false)
	return true
}

func (a *cliApp) setTax(payload string) {
	mode := domain.TaxInclusive
	if payload == "" {
		if a.engine.Session().TaxMode == domain.TaxInclusive {
			mode = domain.TaxExternal
		}
	} else {
		m, err := domain.ParseTaxMode(payload)
		if err != nil {
			a.ui.PrintUrgent(err.Error())
			return
		}
		mode = m
	}
	a.engine.SetTaxMode(mode)
	a.ui.PrintLine("Tax mode: " + mode.String() + ".")
}

func (a *cliApp) status(now time.Time) {
	snap := a.engine.Snapshot(now)
	if !snap.Session.Active() {
		a.ui.PrintHint("No guest. Type 'enter' to start billing.")
		a.printNotices(snap.Notices)
		return
	}

	r := snap.Result
	a.ui.PrintHeader(fmt.Sprintf("Stay %s (%d min), %d extension(s)", display.FormatStay(r.StayMinutes), r.StayMinutes, r.ExtensionCount))
	a.ui.PrintLine("Entry        " + snap.Session.EntryTime.Format("15:04"))
	if snap.Session.HasPlannedExit() {
		a.ui.PrintLine("Planned exit " + snap.Session.PlannedExit.Format("15:04"))
	}
	a.ui.PrintLine("Time charge  " + display.Yen(r.ChargeTotal))
	a.ui.PrintLine("Menu         " + display.Yen(r.MenuTotal))
	if forced := r.ForcedDrink + r.ForcedAmuse + r.ForcedOr; forced > 0 {
		a.ui.PrintLine("Top-ups      " + display.Yen(forced))
	}
	if r.TaxMode == domain.TaxExternal {
		a.ui.PrintLine("Tax          " + display.Yen(r.Tax))
	}
	a.ui.PrintHeader("Total        " + display.Yen(r.Total) + " (" + r.TaxMode.String() + ")")
	a.printNotices(snap.Notices)
}

func (a *cliApp) printNotices(n notice.Notices) {
	a.ui.PrintNotice(n.Closed.Text, n.Closed.Blocks())
	a.ui.PrintNotice(n.Shortage.Text, n.Shortage.Blocks())
}

func (a *cliApp) menu() {
	for _, sec := range a.engine.Catalog().Sections() {
		a.ui.PrintLine(display.FormatMenu(sec, a.engine.Counts(sec.Category)))
	}
	a.ui.PrintHint("add <category> <price> / rm <category> <price>")
}

func (a *cliApp) receipt(now time.Time) {
	rec, err := a.engine.Receipt(now)
	if err != nil {
		a.ui.PrintNotice(notice.LineNoSession(), true)
		return
	}
	a.ui.PrintBlock(display.FormatReceipt(rec))
}

func (a *cliApp) checkout(ctx context.Context, now time.Time) {
	settled, err := a.engine.Checkout(ctx, now)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			a.ui.PrintNotice(notice.LineNoSession(), true)
			return
		}
		a.log.Error("checkout: %v", err)
		a.ui.PrintUrgent("Checkout failed: " + err.Error())
		return
	}
	a.ui.PrintBlock(display.FormatReceipt(&settled.Receipt))
	a.ui.PrintLine("Settled as " + settled.ID + ". Ready for the next guest.")
}

func (a *cliApp) history(ctx context.Context) {
	list, err := a.engine.History(ctx)
	if err != nil {
		a.log.Error("history: %v", err)
		a.ui.PrintUrgent("Could not read the ledger.")
		return
	}
	if len(list) == 0 {
		a.ui.PrintHint("Nothing settled yet.")
		return
	}
	total := 0
	for _, s := range list {
		a.ui.PrintLine(display.FormatSettled(s))
		total += s.Total
	}
	a.ui.PrintHeader(fmt.Sprintf("%d settled, %s", len(list), display.Yen(total)))
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Commands")
	for _, l := range helpLines {
		a.ui.PrintLine(l)
	}
}

var helpLines = []string{
	"enter              admit a guest now",
	"entry HH:MM        correct the entry time",
	"exit HH:MM         bill up to a planned exit",
	"clear-exit         bill up to now again",
	"add <cat> <price>  add a drink, food or amuse item",
	"rm <cat> <price>   remove one item",
	"tax [in|ex]        toggle or set the tax mode",
	"status             show the bill",
	"menu               list prices and selected counts",
	"receipt            itemised bill",
	"checkout           settle the bill and start over",
	"history            settled bills this session",
	"reset              discard the current guest",
	"quit               exit",
}

// parseErrorLine turns a parse error into a usage hint.
func parseErrorLine(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		return "Unknown category. Use drink, food or amuse."
	case errors.Is(err, domain.ErrUnknownTax):
		return "Unknown tax mode. Use inclusive or external."
	case errors.Is(err, domain.ErrBadCommand):
		return "Usage: entry HH:MM, exit HH:MM, add <cat> <price>, rm <cat> <price>."
	default:
		return err.Error()
	}
}
