package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"currency-converter/internal/converter"
	"currency-converter/internal/models"

	"github.com/fatih/color"
)

var errUsage = errors.New("unknown command, type 'help'")

const helpText = `commands:
  base CODE     select base currency
  target CODE   select target currency
  amount N      set amount
  swap          swap base and target
  refresh       fetch the rate again
  fav add       add current pair to favorites
  fav rm N      remove favorite N
  fav N         select favorite N
  show          print the converter
  help          print this help
  quit          exit
`

// Shell построчный интерфейс к converter.Popup.
type Shell struct {
	popup *converter.Popup
	in    io.Reader
	out   io.Writer
	log   *slog.Logger

	title  *color.Color
	value  *color.Color
	muted  *color.Color
	errorC *color.Color
}

func NewShell(popup *converter.Popup, in io.Reader, out io.Writer, log *slog.Logger) *Shell {
	return &Shell{
		popup:  popup,
		in:     in,
		out:    out,
		log:    log,
		title:  color.New(color.FgCyan, color.Bold),
		value:  color.New(color.FgGreen),
		muted:  color.New(color.Faint),
		errorC: color.New(color.FgRed),
	}
}

// Run читает команды до quit, конца ввода или отмены ctx.
func (s *Shell) Run(ctx context.Context) error {
	const op = "console.Run"

	s.Render()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, "> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
				return nil
			}
			quit, err := s.Execute(ctx, line)
			if err != nil {
				s.errorC.Fprintln(s.out, err.Error())
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute выполняет одну команду. Ошибки Popup уже показаны в его состоянии,
// наружу возвращаются только ошибки разбора команды.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	var actionErr error

	switch {
	case cmd == "quit" || cmd == "exit":
		return true, nil
	case cmd == "help":
		fmt.Fprint(s.out, helpText)
		return false, nil
	case cmd == "show":
		s.Render()
		return false, nil
	case cmd == "swap":
		actionErr = s.popup.Swap(ctx)
	case cmd == "refresh":
		actionErr = s.popup.Refresh(ctx)
	case cmd == "base" && len(args) == 1:
		actionErr = s.popup.SetBaseCurrency(ctx, models.Currency(strings.ToUpper(args[0])))
	case cmd == "target" && len(args) == 1:
		actionErr = s.popup.SetTargetCurrency(ctx, models.Currency(strings.ToUpper(args[0])))
	case cmd == "amount":
		actionErr = s.popup.OnAmountChanged(ctx, strings.Join(args, " "))
	case cmd == "fav" && len(args) == 1 && args[0] == "add":
		actionErr = s.popup.AddFavorite(ctx)
	case cmd == "fav" && len(args) == 2 && args[0] == "rm":
		n, err := favoriteNumber(args[1])
		if err != nil {
			return false, err
		}
		actionErr = s.popup.RemoveFavorite(ctx, n-1)
	case cmd == "fav" && len(args) == 1:
		n, err := favoriteNumber(args[0])
		if err != nil {
			return false, err
		}
		actionErr = s.popup.SelectFavorite(ctx, n-1)
	default:
		return false, errUsage
	}

	if actionErr != nil {
		s.log.Debug("действие завершилось ошибкой", slog.String("command", cmd), slog.String("error", actionErr.Error()))
	}
	s.Render()
	return false, nil
}

func favoriteNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("favorite number must be a positive integer, got %q", arg)
	}
	return n, nil
}

// Render печатает текущее состояние Popup.
func (s *Shell) Render() {
	d := s.popup.Display()

	s.title.Fprintf(s.out, "%s -> %s\n", d.BaseCurrency, d.TargetCurrency)
	if d.ExchangeRate != "" {
		fmt.Fprintf(s.out, "  rate:    %s\n", d.ExchangeRate)
		fmt.Fprintf(s.out, "  amount:  %s %s = ", d.Amount, d.BaseLabel)
		s.value.Fprintf(s.out, "%s %s\n", d.ConvertedAmount, d.TargetLabel)
		s.muted.Fprintf(s.out, "  updated: %s\n", d.UpdateTime)
	}
	if d.ErrorMessage != "" {
		s.errorC.Fprintf(s.out, "  error:   %s\n", d.ErrorMessage)
	}

	if len(d.Favorites) == 0 {
		s.muted.Fprintln(s.out, "  no favorites")
		return
	}
	fmt.Fprintln(s.out, "  favorites:")
	for i, f := range d.Favorites {
		fmt.Fprintf(s.out, "    %d. %s\n", i+1, f.String())
	}
}
