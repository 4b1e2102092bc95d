package scraper

import (
	"context"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/pkg/numfmt"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

// DefaultURLTemplate страница дневных котировок Naver Finance, %s%s = FROM, TO
const DefaultURLTemplate = "https://finance.naver.com/marketindex/exchangeDailyQuote.naver?marketindexCd=FX_%s%s&page=1"

var rateCell = regexp.MustCompile(`<td class="num">([\d,.]+)</td>`)

type RateFetcher interface {
	FetchRate(ctx context.Context, from, to models.Currency) (float64, error)
}

type NaverClient struct {
	httpClient  *http.Client
	urlTemplate string
	log         *slog.Logger
}

// NewNaverClient timeout 0 оставляет запрос без ограничения по времени.
func NewNaverClient(urlTemplate string, timeout time.Duration, log *slog.Logger) *NaverClient {
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	return &NaverClient{
		httpClient:  &http.Client{Timeout: timeout},
		urlTemplate: urlTemplate,
		log:         log,
	}
}

func (c *NaverClient) URL(from, to models.Currency) string {
	return fmt.Sprintf(c.urlTemplate, from, to)
}

func (c *NaverClient) FetchRate(ctx context.Context, from, to models.Currency) (float64, error) {
	const op = "scraper.FetchRate"

	url := c.URL(from, to)
	c.log.Info("запрос курса с сайта",
		slog.String("op", op),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("url", url))

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", custom_err.ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ошибка запроса курса", slog.String("op", op), slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: %v", custom_err.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("неуспешный статус ответа", slog.String("op", op), slog.Int("status", resp.StatusCode))
		return 0, fmt.Errorf("%w: HTTP error! status: %d", custom_err.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("ошибка чтения ответа", slog.String("op", op), slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: %v", custom_err.ErrFetch, err)
	}

	duration := time.Since(start)
	if duration > time.Second {
		c.log.Warn("медленный ответ сайта котировок",
			slog.String("op", op),
			slog.Duration("duration", duration))
	}

	rate, err := ParseRate(string(body))
	if err != nil {
		c.log.Error("не удалось разобрать курс", slog.String("op", op), slog.String("error", err.Error()))
		return 0, err
	}

	c.log.Debug("курс найден", slog.String("op", op), slog.Float64("rate", rate))
	return rate, nil
}

// ParseRate берет первое совпадение ячейки <td class="num"> и разбирает число в ней.
func ParseRate(html string) (float64, error) {
	m := rateCell.FindStringSubmatch(html)
	if m == nil || m[1] == "" {
		return 0, custom_err.ErrRateNotFound
	}
	rate, ok := numfmt.ParseLeadingFloat(numfmt.StripThousands(m[1]))
	if !ok {
		return 0, fmt.Errorf("%w (NaN)", custom_err.ErrRateNotANumber)
	}
	return rate, nil
}
