package converter

import (
	"context"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/messaging"
	"currency-converter/internal/models"
	"currency-converter/internal/storage"
	"currency-converter/pkg/numfmt"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"
)

const UpdateTimeLayout = "2006-01-02 15:04:05"

var rateLabel = regexp.MustCompile(`1\s*\w+\s*=\s*([\d,.]+)\s*\w+`)

// Display то, что сейчас показано пользователю.
type Display struct {
	BaseCurrency    models.Currency
	TargetCurrency  models.Currency
	Amount          string
	ExchangeRate    string
	ConvertedAmount string
	UpdateTime      string
	BaseLabel       string
	TargetLabel     string
	ErrorMessage    string
	Favorites       []models.FavoritePair
}

type Options struct {
	BaseCurrency   models.Currency
	TargetCurrency models.Currency
	Amount         string
	Location       *time.Location
	Now            func() time.Time
}

// Popup состояние конвертера: выбранная пара, сумма, показанный курс и избранное.
// Каждое действие отправляет не больше одного запроса; ответы не упорядочиваются,
// на экране остается последний пришедший.
type Popup struct {
	mu        sync.Mutex
	display   Display
	favorites *Favorites

	messenger messaging.Messenger
	store     storage.LocalStorage
	location  *time.Location
	now       func() time.Time
	log       *slog.Logger
}

func NewPopup(messenger messaging.Messenger, store storage.LocalStorage, opts Options, log *slog.Logger) *Popup {
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = models.CurrencyUSD
	}
	if opts.TargetCurrency == "" {
		opts.TargetCurrency = models.CurrencyKRW
	}
	if opts.Amount == "" {
		opts.Amount = "1"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Popup{
		display: Display{
			BaseCurrency:   opts.BaseCurrency,
			TargetCurrency: opts.TargetCurrency,
			Amount:         opts.Amount,
			BaseLabel:      string(opts.BaseCurrency),
			TargetLabel:    string(opts.TargetCurrency),
		},
		favorites: NewFavorites(nil),
		messenger: messenger,
		store:     store,
		location:  opts.Location,
		now:       opts.Now,
		log:       log,
	}
}

// Display возвращает копию текущего состояния экрана.
func (p *Popup) Display() Display {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := p.display
	d.Favorites = p.favorites.List()
	return d
}

// Load читает избранное и запрашивает начальный курс.
func (p *Popup) Load(ctx context.Context) error {
	p.loadFavorites(ctx)
	return p.Refresh(ctx)
}

func (p *Popup) loadFavorites(ctx context.Context) {
	var pairs []models.FavoritePair
	if _, err := p.store.Get(ctx, models.FavoritesKey, &pairs); err != nil {
		p.log.Error("ошибка загрузки избранного", slog.String("error", err.Error()))
		pairs = nil
	}

	p.mu.Lock()
	p.favorites = NewFavorites(pairs)
	p.mu.Unlock()
}

func (p *Popup) saveFavorites(ctx context.Context, pairs []models.FavoritePair) {
	if err := p.store.Set(ctx, models.FavoritesKey, pairs); err != nil {
		p.log.Error("ошибка сохранения избранного", slog.String("error", err.Error()))
	}
}

// Refresh запрашивает курс для выбранной пары. При ошибке прежние значения на экране
// не меняются. Одинаковые валюты обрабатываются локально с курсом 1.
func (p *Popup) Refresh(ctx context.Context) error {
	p.mu.Lock()
	base := p.display.BaseCurrency
	target := p.display.TargetCurrency
	amount := parseAmount(p.display.Amount)

	if base == target {
		p.updateUI(models.NewRatePoint(1, base, target, p.now()), amount)
		p.showError(custom_err.ErrSameCurrency)
		p.mu.Unlock()
		return custom_err.ErrSameCurrency
	}
	p.mu.Unlock()

	resp, err := p.messenger.Send(ctx, models.Message{
		Type:         models.MessageGetExchangeRate,
		FromCurrency: base,
		ToCurrency:   target,
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.log.Error("ошибка получения курса", slog.String("error", err.Error()))
		p.showError(err)
		return err
	}
	if !resp.Success || resp.Data == nil {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error while fetching exchange rate"
		}
		err := errors.New(msg)
		p.showError(err)
		return err
	}

	p.updateUI(*resp.Data, amount)
	p.log.Debug("курс обновлен",
		slog.String("source", string(resp.Source)),
		slog.Float64("rate", resp.Data.Rate))
	return nil
}

// OnAmountChanged пересчитывает сумму по курсу из показанной подписи без запроса.
// Если подписи с курсом нет, выполняет Refresh.
func (p *Popup) OnAmountChanged(ctx context.Context, text string) error {
	p.mu.Lock()
	p.display.Amount = text

	m := rateLabel.FindStringSubmatch(p.display.ExchangeRate)
	if m != nil {
		rate, _ := numfmt.ParseLeadingFloat(numfmt.StripThousands(m[1]))
		p.display.ConvertedAmount = CalculateExchange(parseAmount(text), rate)
		p.display.BaseLabel = string(p.display.BaseCurrency)
		p.display.TargetLabel = string(p.display.TargetCurrency)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	return p.Refresh(ctx)
}

func (p *Popup) SetBaseCurrency(ctx context.Context, c models.Currency) error {
	if err := p.selectCurrency(c, func(d *Display) { d.BaseCurrency = c }); err != nil {
		return err
	}
	return p.Refresh(ctx)
}

func (p *Popup) SetTargetCurrency(ctx context.Context, c models.Currency) error {
	if err := p.selectCurrency(c, func(d *Display) { d.TargetCurrency = c }); err != nil {
		return err
	}
	return p.Refresh(ctx)
}

func (p *Popup) selectCurrency(c models.Currency, set func(*Display)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !c.IsSupported() {
		err := fmt.Errorf("%w: %s", custom_err.ErrUnsupportedCurrency, c)
		p.showError(err)
		return err
	}
	set(&p.display)
	return nil
}

func (p *Popup) Swap(ctx context.Context) error {
	p.mu.Lock()
	p.display.BaseCurrency, p.display.TargetCurrency = p.display.TargetCurrency, p.display.BaseCurrency
	p.mu.Unlock()

	return p.Refresh(ctx)
}

func (p *Popup) AddFavorite(ctx context.Context) error {
	p.mu.Lock()
	pair := models.FavoritePair{
		FromCurrency: p.display.BaseCurrency,
		ToCurrency:   p.display.TargetCurrency,
	}
	if err := p.favorites.Add(pair); err != nil {
		p.showError(err)
		p.mu.Unlock()
		return err
	}
	pairs := p.favorites.List()
	p.mu.Unlock()

	p.log.Info("пара добавлена в избранное", slog.String("pair", pair.String()))
	p.saveFavorites(ctx, pairs)
	return nil
}

func (p *Popup) RemoveFavorite(ctx context.Context, index int) error {
	p.mu.Lock()
	if err := p.favorites.Remove(index); err != nil {
		p.showError(err)
		p.mu.Unlock()
		return err
	}
	pairs := p.favorites.List()
	p.mu.Unlock()

	p.saveFavorites(ctx, pairs)
	return nil
}

func (p *Popup) SelectFavorite(ctx context.Context, index int) error {
	p.mu.Lock()
	pair, err := p.favorites.At(index)
	if err != nil {
		p.showError(err)
		p.mu.Unlock()
		return err
	}
	p.display.BaseCurrency = pair.FromCurrency
	p.display.TargetCurrency = pair.ToCurrency
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// updateUI вызывается под p.mu.
func (p *Popup) updateUI(point models.RatePoint, amount float64) {
	p.display.ExchangeRate = fmt.Sprintf("1 %s = %s %s", point.FromCurrency, numfmt.Fixed(point.Rate, 2), point.ToCurrency)
	p.display.ConvertedAmount = CalculateExchange(amount, point.Rate)
	p.display.UpdateTime = p.formatTime(point.Timestamp)
	p.display.BaseLabel = string(point.FromCurrency)
	p.display.TargetLabel = string(point.ToCurrency)
	p.display.ErrorMessage = ""
}

// showError вызывается под p.mu.
func (p *Popup) showError(err error) {
	p.display.ErrorMessage = err.Error()
}

func (p *Popup) formatTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return "Invalid Date"
	}
	return t.In(p.location).Format(UpdateTimeLayout)
}
