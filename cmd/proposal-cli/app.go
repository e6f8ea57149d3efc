package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/export"
	"proposal-workers/internal/export/clipboard"
	"proposal-workers/internal/export/datafile"
	"proposal-workers/internal/export/document"
	"proposal-workers/internal/export/mailcompose"
	"proposal-workers/internal/export/storage"
	"proposal-workers/internal/export/summary"
	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/proposal/session"
)

// app is the interactive host. It owns one session and applies one command
// at a time.
type app struct {
	sess   *session.Session
	sender mailcompose.Sender
	sink   storage.Sink
	copier *clipboard.Copier
	open   func(url string) error
	out    io.Writer
	logger logger.Logger
}

var errQuit = fmt.Errorf("quit")

// run reads commands until EOF or quit.
func (a *app) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(a.out, "Restaurant digital presence proposal. Type 'help' for commands.")
	a.printStatus()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		if err := a.exec(ctx, scanner.Text()); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

// exec applies one command line. Errors are about the command itself;
// export failures are reported as notices and return nil.
func (a *app) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	state := a.sess.State()

	switch cmd {
	case "help", "?":
		a.printHelp()
		return nil
	case "quit", "exit":
		return errQuit
	case "list", "catalog":
		a.printCatalog()
		return nil
	case "approaches":
		a.printApproaches()
		return nil
	case "status", "totals":
		a.printStatus()
		return nil

	case "toggle":
		if len(args) == 0 {
			return fmt.Errorf("usage: toggle <item-id>...")
		}
		for _, id := range args {
			if !state.Toggle(id) {
				fmt.Fprintf(a.out, "unknown item %q\n", id)
			}
		}
	case "category":
		if len(args) != 2 {
			return fmt.Errorf("usage: category <category-id> on|off")
		}
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		if !state.SetCategory(args[0], on) {
			return fmt.Errorf("unknown category %q", args[0])
		}
	case "approach":
		if len(args) != 1 {
			return fmt.Errorf("usage: approach nocode|cms|custom")
		}
		ap, err := catalog.ParseApproach(args[0])
		if err != nil {
			return err
		}
		state.SetApproach(ap)
	case "rush":
		if len(args) != 1 {
			return fmt.Errorf("usage: rush on|off")
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		state.SetRush(on)
	case "contingency":
		if len(args) != 1 {
			return fmt.Errorf("usage: contingency <percent>")
		}
		n, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
		if err != nil {
			return fmt.Errorf("contingency must be a whole number: %w", err)
		}
		if got := a.sess.SetContingency(n); got != n {
			l := a.sess.Limits()
			fmt.Fprintf(a.out, "contingency set to %d%% (range %d-%d, step %d)\n", got, l.Min, l.Max, l.Step)
		}
	case "client", "restaurant", "email":
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		switch cmd {
		case "client":
			a.sess.SetClientName(value)
		case "restaurant":
			a.sess.SetRestaurantName(value)
		case "email":
			a.sess.SetClientEmail(value)
		}
	case "reset":
		a.sess.Reset()

	case "export":
		if len(args) == 0 {
			return fmt.Errorf("usage: export data|pdf|summary|mail [copy]")
		}
		a.export(ctx, strings.ToLower(args[0]), args[1:])
		return nil

	default:
		return fmt.Errorf("unknown command %q, type 'help'", fields[0])
	}

	a.printStatus()
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

// export snapshots the session and hands it to one adapter. Nothing here
// changes the session.
func (a *app) export(ctx context.Context, kind string, args []string) {
	s := a.sess.Snapshot()

	switch kind {
	case "data", "json":
		data, err := datafile.Marshal(s)
		if err == nil {
			_, err = a.store(ctx, datafile.Filename(s), datafile.ContentType, data)
		}
		a.notice(export.NoticeDataExported, export.NoticeDataFailed, err)

	case "pdf", "document":
		data, pages, err := document.Render(s)
		var location string
		if err == nil {
			location, err = a.store(ctx, document.Filename(s), document.ContentType, data)
		}
		a.notice(export.NoticeDocumentSaved, export.NoticeDocumentFailed, err)
		if err == nil {
			fmt.Fprintf(a.out, "%d page(s) written to %s\n", pages, location)
		}

	case "summary":
		a.copyText(summary.Render(s), export.NoticeSummaryCopied)

	case "mail", "email":
		msg, err := mailcompose.Compose(s, a.sender)
		if err != nil {
			// a missing address is a message, not a failure
			if stdErr, ok := errors.AsStandardError(err); ok {
				fmt.Fprintln(a.out, stdErr.Message)
				return
			}
			fmt.Fprintln(a.out, export.NoticeMailFailed)
			return
		}
		if len(args) > 0 && strings.EqualFold(args[0], "copy") {
			a.copyText(msg.CopyText(), export.NoticeMailCopied)
			return
		}
		fmt.Fprintln(a.out, export.NoticeMailOpened)
		if err := a.open(msg.MailtoURL()); err != nil {
			a.logger.Warn("mail handler launch failed", map[string]interface{}{"error": err.Error()})
			fmt.Fprintln(a.out, export.NoticeMailFailed)
			a.copyText(msg.CopyText(), export.NoticeMailCopied)
		}

	default:
		fmt.Fprintf(a.out, "unknown export %q, use data, pdf, summary or mail\n", kind)
	}
}

func (a *app) store(ctx context.Context, name, contentType string, data []byte) (string, error) {
	location, err := a.sink.Put(ctx, name, contentType, data)
	if err != nil {
		return "", err
	}
	a.logger.Info("export stored", map[string]interface{}{"location": location, "bytes": len(data)})
	return location, nil
}

func (a *app) copyText(text, success string) {
	res, err := a.copier.Copy(text)
	if err != nil {
		a.logger.Warn("copy failed", map[string]interface{}{"error": err.Error()})
		fmt.Fprintln(a.out, "Could not copy to clipboard. Please copy the content manually:")
		fmt.Fprintln(a.out, text)
		return
	}
	if res.Method == clipboard.MethodFile {
		fmt.Fprintf(a.out, "Clipboard unavailable, content written to %s\n", res.Path)
		return
	}
	fmt.Fprintln(a.out, success)
}

func (a *app) notice(success, failure string, err error) {
	if err != nil {
		a.logger.Warn("export failed", map[string]interface{}{"error": err.Error()})
		fmt.Fprintln(a.out, failure)
		return
	}
	fmt.Fprintln(a.out, success)
}

func (a *app) printStatus() {
	state := a.sess.State()
	t := a.sess.Totals()
	f := a.sess.Formatter()

	rush := "standard"
	if state.Rush() {
		rush = "rush"
	}
	fmt.Fprintf(a.out, "[%s, %s, %d items] one-off %s + contingency %s (%s) = %s | monthly %s | %s, %s",
		state.Approach().Label(), rush, len(state.SelectedIDs()),
		f.Currency(t.OneOffTotal), f.Currency(t.ContingencyAmount), f.Percentage(state.ContingencyPercentage()),
		f.Currency(t.GrandTotal), f.MonthlyCurrency(t.RecurringTotal),
		f.Days(float64(t.EffortDays)), f.Weeks(t.EstimatedWeeks))
	if !state.Rush() {
		fmt.Fprintf(a.out, " (with rush: %s)", f.Weeks(a.sess.RushPreview()))
	}
	fmt.Fprintln(a.out)
}

func (a *app) printCatalog() {
	state := a.sess.State()
	f := a.sess.Formatter()
	ap := state.Approach()

	for _, c := range state.Catalog().Categories() {
		selected, total := state.CategoryCount(c.ID)
		fmt.Fprintf(a.out, "\n%s (%s) %d/%d\n", c.Name, c.ID, selected, total)
		for _, it := range c.Items {
			mark := " "
			if state.IsSelected(it.ID) {
				mark = "x"
			}
			price := f.Currency(it.Price.For(ap)) + ", " + f.Days(it.Days.For(ap))
			if it.IsRecurring() {
				price = f.MonthlyCurrency(it.Monthly())
			}
			essential := ""
			if it.Essential {
				essential = " *"
			}
			fmt.Fprintf(a.out, "  [%s] %-24s %s%s  %s\n", mark, it.ID, it.Label, essential, price)
		}
	}
	fmt.Fprintln(a.out, "\n* essential")
}

func (a *app) printApproaches() {
	state := a.sess.State()
	f := a.sess.Formatter()

	for _, cmp := range aggregator.CompareApproaches(state.Catalog(), state.Inputs()) {
		info := cmp.Approach.Info()
		mark := " "
		if cmp.Approach == state.Approach() {
			mark = ">"
		}
		fmt.Fprintf(a.out, "%s %-8s %s: %s\n", mark, cmp.Approach, info.Label, info.Subtitle)
		fmt.Fprintf(a.out, "    %s total, %s, %s. Best for: %s\n",
			f.Currency(cmp.Totals.GrandTotal), f.Days(float64(cmp.Totals.EffortDays)),
			f.Weeks(cmp.Totals.EstimatedWeeks), info.BestFor)
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `Commands:
  list                          show the catalog with the current selection
  toggle <item-id>...           add or remove items
  category <category-id> on|off select or clear a whole category
  approach nocode|cms|custom    set the development approach
  approaches                    compare the selection under every approach
  rush on|off                   accelerated delivery (25% less effort, same cost)
  contingency <percent>         contingency buffer, clamped to the allowed range
  client|restaurant|email <v>   set client details
  status                        show totals
  export data                   write the JSON data file
  export pdf                    write the PDF proposal
  export summary                copy the summary text
  export mail [copy]            open the proposal mail, or copy it
  reset                         start over from the starter selection
  quit
`)
}
