package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pennywise/client/internal/auth"
	"github.com/pennywise/client/internal/facade"
	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/notify"
	"github.com/pennywise/client/internal/preferences"
	"github.com/pennywise/client/internal/services"
	"github.com/pennywise/client/internal/state"
	"github.com/shopspring/decimal"
)

const help = `commands:
  list | next | prev | page N | size N | sort FIELD[,asc|desc]
  filter [type=EXPENSE|INCOME|TRANSFER] [wallet=ID] [from=YYYY-MM-DD] [to=YYYY-MM-DD]
  clear
  show ID
  add TYPE AMOUNT [date=YYYY-MM-DD] [from=WALLET] [to=WALLET] [rate=R] [category=ID] [note=TEXT]
  edit ID key=value...
  delete ID
  wallets | categories
  mode | lang CODE | login TOKEN | quit`

// messages is the fallback English catalog for toast keys.
var messages = map[string]string{
	"errors.network":            "Network error, check your connection",
	"errors.forbidden":          "You are not allowed to do that",
	"errors.notFound":           "The record no longer exists",
	"errors.server":             "Server error (%v)",
	"errors.request":            "Request rejected (%v)",
	"errors.unexpected":         "Something went wrong",
	"toast.transaction.created": "Transaction created",
	"toast.transaction.updated": "Transaction updated",
	"toast.transaction.deleted": "Transaction deleted",
	"transaction.type.expense":  "Expense",
	"transaction.type.income":   "Income",
	"transaction.type.transfer": "Transfer",
	"transaction.type.unknown":  "Unknown",
}

func translate(t notify.Toast) string {
	msg, ok := messages[t.Key]
	if !ok {
		return t.Key
	}
	if status, ok := t.Params["status"]; ok && strings.Contains(msg, "%v") {
		return fmt.Sprintf(msg, status)
	}
	return msg
}

type repl struct {
	facade  *facade.TransactionFacade
	catalog *services.CatalogService
	session *auth.Session
	in      *bufio.Scanner
	out     io.Writer
}

// Confirm asks on the terminal before a delete.
func (r *repl) Confirm(_ context.Context, id string) (bool, error) {
	fmt.Fprintf(r.out, "Delete transaction %s? [y/N] ", id)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return false, err
		}
		return false, io.EOF
	}
	answer := strings.ToLower(strings.TrimSpace(r.in.Text()))
	return answer == "y" || answer == "yes", nil
}

func (r *repl) run(ctx context.Context) {
	fmt.Fprint(r.out, "> ")
	for r.in.Scan() {
		line := strings.TrimSpace(r.in.Text())
		if line == "quit" || line == "exit" {
			return
		}
		if line != "" {
			if err := r.exec(ctx, line); err != nil && !errors.Is(err, services.ErrOperationCancelled) {
				fmt.Fprintln(r.out, "error:", err)
			}
		}
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, "> ")
	}
}

func (r *repl) exec(ctx context.Context, line string) error {
	cmd, args := splitCommand(line)
	f := r.facade

	var err error
	switch cmd {
	case "help":
		fmt.Fprintln(r.out, help)
		return nil
	case "list":
		err = f.Load(ctx)
	case "next":
		err = f.NextPage(ctx)
	case "prev":
		err = f.PreviousPage(ctx)
	case "page":
		n, perr := intArg(args, "page")
		if perr != nil {
			return perr
		}
		err = f.GoToPage(ctx, n-1)
	case "size":
		n, perr := intArg(args, "size")
		if perr != nil {
			return perr
		}
		err = f.SetPageSize(ctx, n)
	case "sort":
		if len(args) != 1 {
			return errors.New("usage: sort FIELD[,asc|desc]")
		}
		err = f.SetSort(ctx, args[0])
	case "filter":
		patch, perr := parseFilterPatch(args)
		if perr != nil {
			return perr
		}
		err = f.UpdateFilter(ctx, patch)
	case "clear":
		err = f.ClearFilters(ctx)
	case "show":
		if len(args) != 1 {
			return errors.New("usage: show ID")
		}
		rec, serr := f.Open(ctx, args[0])
		if serr != nil {
			return serr
		}
		r.printDetail(rec)
		return nil
	case "add":
		p, perr := parsePayload(args)
		if perr != nil {
			return perr
		}
		_, err = f.Create(ctx, p)
	case "edit":
		if len(args) < 2 {
			return errors.New("usage: edit ID key=value...")
		}
		current, serr := f.Open(ctx, args[0])
		if serr != nil {
			return serr
		}
		p, perr := applyEdits(models.PayloadFrom(current), args[1:])
		if perr != nil {
			return perr
		}
		_, err = f.Update(ctx, args[0], p)
	case "delete":
		if len(args) != 1 {
			return errors.New("usage: delete ID")
		}
		err = f.Delete(ctx, args[0], r)
	case "wallets":
		for _, w := range r.catalog.Wallets() {
			fmt.Fprintf(r.out, "%-10s %-20s %s %s\n", w.ID, w.Name, w.Currency, w.Type)
		}
		return nil
	case "categories":
		for _, c := range r.catalog.Categories() {
			fmt.Fprintf(r.out, "%-10s %-20s %s %s\n", c.ID, c.Name, c.Type, c.Color)
		}
		return nil
	case "mode":
		mode, merr := f.ToggleDisplayMode(ctx)
		if merr != nil {
			return merr
		}
		fmt.Fprintln(r.out, "display mode:", mode)
	case "lang":
		if len(args) != 1 {
			fmt.Fprintln(r.out, "language:", f.Language(ctx))
			return nil
		}
		return f.SetLanguage(ctx, args[0])
	case "login":
		if len(args) != 1 {
			return errors.New("usage: login TOKEN")
		}
		r.session.Login(args[0])
		r.catalog.Load(ctx)
		err = f.Load(ctx)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}

	if err != nil {
		return err
	}
	r.render(ctx)
	return nil
}

func (r *repl) render(ctx context.Context) {
	f := r.facade
	view := f.ListView()

	if view.Error != "" {
		fmt.Fprintln(r.out, "!", view.Error)
	}
	p := view.Pagination
	fmt.Fprintf(r.out, "page %d/%d, %d transactions, sort %s\n", p.Page+1, max(p.TotalPages, 1), p.TotalElements, view.Sort)

	cards := f.DisplayMode(ctx) == preferences.DisplayCards
	for _, t := range view.Records {
		if cards {
			r.printDetail(t)
			fmt.Fprintln(r.out)
			continue
		}
		fmt.Fprintf(r.out, "%-36s %s %-9s %12s  %-14s %s\n",
			t.ID, t.EffectiveDate, translate(notify.Toast{Key: facade.TypeLabel(t.TransactionType)}),
			facade.FormatAmount(t), r.walletColumn(t), f.CategoryName(t.CategoryID))
	}
}

func (r *repl) walletColumn(t models.Transaction) string {
	from, to := r.facade.WalletName(t.WalletFromID), r.facade.WalletName(t.WalletToID)
	switch {
	case from != "" && to != "":
		return from + " -> " + to
	case from != "":
		return from
	}
	return to
}

func (r *repl) printDetail(t models.Transaction) {
	f := r.facade
	fmt.Fprintf(r.out, "id:       %s\n", t.ID)
	fmt.Fprintf(r.out, "type:     %s\n", translate(notify.Toast{Key: facade.TypeLabel(t.TransactionType)}))
	fmt.Fprintf(r.out, "date:     %s\n", t.EffectiveDate)
	fmt.Fprintf(r.out, "amount:   %s\n", facade.FormatAmount(t))
	if !t.ExchangeRate.Equal(decimal.NewFromInt(1)) && t.DestinationAmount != nil {
		fmt.Fprintf(r.out, "rate:     %s (%s)\n", t.ExchangeRate, t.DestinationAmount.StringFixed(2))
	}
	fmt.Fprintf(r.out, "wallet:   %s\n", r.walletColumn(t))
	if t.CategoryID != nil {
		fmt.Fprintf(r.out, "category: %s\n", f.CategoryName(t.CategoryID))
	}
	if t.Note != "" {
		fmt.Fprintf(r.out, "note:     %s\n", t.Note)
	}
}

// splitCommand separates the command word from its arguments. A note=
// argument swallows the rest of the line.
func splitCommand(line string) (string, []string) {
	var note string
	if i := strings.Index(line, " note="); i >= 0 {
		note = line[i+1:]
		line = line[:i]
	}
	fields := strings.Fields(line)
	if note != "" {
		fields = append(fields, note)
	}
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func intArg(args []string, name string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s N", name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func keyValues(args []string) (map[string]string, error) {
	kv := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		kv[strings.ToLower(k)] = v
	}
	return kv, nil
}

// parseFilterPatch builds a patch from type=, wallet=, from= and to=. An
// empty value clears that filter.
func parseFilterPatch(args []string) (state.FilterPatch, error) {
	kv, err := keyValues(args)
	if err != nil {
		return state.FilterPatch{}, err
	}

	var patch state.FilterPatch
	for k, v := range kv {
		switch k {
		case "type":
			t := models.TransactionType(strings.ToUpper(v))
			if t != "" && !t.Valid() {
				return patch, fmt.Errorf("unknown type %q", v)
			}
			patch.TransactionType = &t
		case "wallet":
			w := v
			patch.WalletID = &w
		case "from", "to":
			var d models.Date
			if v != "" {
				if d, err = models.ParseDate(v); err != nil {
					return patch, err
				}
			}
			if k == "from" {
				patch.StartDate = &d
			} else {
				patch.EndDate = &d
			}
		default:
			return patch, fmt.Errorf("unknown filter %q", k)
		}
	}
	return patch, nil
}

// parsePayload reads "TYPE AMOUNT key=value...". The date defaults to today.
func parsePayload(args []string) (models.TransactionPayload, error) {
	if len(args) < 2 {
		return models.TransactionPayload{}, errors.New("usage: add TYPE AMOUNT [key=value...]")
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return models.TransactionPayload{}, fmt.Errorf("amount: %w", err)
	}
	p := models.TransactionPayload{
		TransactionType: models.TransactionType(strings.ToUpper(args[0])),
		Amount:          amount,
		EffectiveDate:   models.Today(),
	}
	return applyEdits(p, args[2:])
}

func applyEdits(p models.TransactionPayload, args []string) (models.TransactionPayload, error) {
	kv, err := keyValues(args)
	if err != nil {
		return p, err
	}
	for k, v := range kv {
		switch k {
		case "type":
			p.TransactionType = models.TransactionType(strings.ToUpper(v))
		case "amount":
			if p.Amount, err = decimal.NewFromString(v); err != nil {
				return p, fmt.Errorf("amount: %w", err)
			}
		case "rate":
			rate, err := decimal.NewFromString(v)
			if err != nil {
				return p, fmt.Errorf("rate: %w", err)
			}
			p.ExchangeRate = &rate
		case "date":
			if p.EffectiveDate, err = models.ParseDate(v); err != nil {
				return p, err
			}
		case "from":
			p.WalletFromID = models.StringRef(v)
		case "to":
			p.WalletToID = models.StringRef(v)
		case "category":
			p.CategoryID = models.StringRef(v)
		case "note":
			p.Note = v
		default:
			return p, fmt.Errorf("unknown field %q", k)
		}
	}
	return p, nil
}
