package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/can-finance/tradingclocks/internal/domain"
	"github.com/can-finance/tradingclocks/internal/holiday"
	"github.com/can-finance/tradingclocks/internal/util"
)

// LoadMarkets reads the market list from a local path or http(s) URL.
// A missing or unparsable source falls back to the built-in default list;
// the display is better served by a short list than by no list. Records
// that fail validation are dropped individually.
func LoadMarkets(ctx context.Context, source string, log *slog.Logger) []domain.Market {
	data, err := readDocument(ctx, source)
	if err != nil {
		log.Warn("loading market list, using built-in defaults", "source", source, "error", err)
		return DefaultMarkets()
	}

	var markets []domain.Market
	if err := json.Unmarshal(data, &markets); err != nil {
		log.Warn("parsing market list, using built-in defaults", "source", source, "error", err)
		return DefaultMarkets()
	}

	valid := markets[:0]
	for _, m := range markets {
		if err := m.Validate(); err != nil {
			log.Warn("dropping invalid market", "error", err)
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		log.Warn("market list empty after validation, using built-in defaults", "source", source)
		return DefaultMarkets()
	}
	return valid
}

// LoadHolidays reads the holiday table from a local path or http(s) URL.
// Any failure degrades to an empty calendar: no holidays, never an error.
func LoadHolidays(ctx context.Context, source string, log *slog.Logger) *holiday.Calendar {
	data, err := readDocument(ctx, source)
	if err != nil {
		log.Warn("loading holiday table, continuing without holidays", "source", source, "error", err)
		return holiday.Empty()
	}
	cal, err := holiday.Parse(data)
	if err != nil {
		log.Warn("parsing holiday table, continuing without holidays", "source", source, "error", err)
		return holiday.Empty()
	}
	return cal
}

// readDocument fetches a JSON document from disk or, for http(s) sources,
// over the network with retries.
func readDocument(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetchDocument(ctx, source)
	}
	return os.ReadFile(source)
}

func fetchDocument(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	var body []byte
	err := util.Retry(ctx, 3, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}

// DefaultMarkets is the built-in fallback market list used when the
// configured document cannot be loaded.
func DefaultMarkets() []domain.Market {
	return []domain.Market{
		{
			ID: "nyse", Name: "New York Stock Exchange", Code: "NYSE",
			Country: "United States", CountryCode: "US",
			Timezone: "America/New_York", OpenTime: "09:30", CloseTime: "16:00",
			Region: domain.RegionAmericas,
			DSTStart: "second Sunday of March", DSTEnd: "first Sunday of November",
		},
		{
			ID: "nasdaq", Name: "NASDAQ", Code: "NASDAQ",
			Country: "United States", CountryCode: "US",
			Timezone: "America/New_York", OpenTime: "09:30", CloseTime: "16:00",
			Region: domain.RegionAmericas,
			DSTStart: "second Sunday of March", DSTEnd: "first Sunday of November",
		},
		{
			ID: "lse", Name: "London Stock Exchange", Code: "LSE",
			Country: "United Kingdom", CountryCode: "GB",
			Timezone: "Europe/London", OpenTime: "08:00", CloseTime: "16:30",
			Region: domain.RegionEMEA,
			DSTStart: "last Sunday of March", DSTEnd: "last Sunday of October",
		},
		{
			ID: "jpx", Name: "Japan Exchange Group", Code: "JPX",
			Country: "Japan", CountryCode: "JP",
			Timezone: "Asia/Tokyo", OpenTime: "09:00", CloseTime: "15:30",
			Region:     domain.RegionAPAC,
			LunchStart: "11:30", LunchEnd: "12:30",
		},
	}
}
