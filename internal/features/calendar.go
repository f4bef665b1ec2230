package features

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scmhub/calendar"

	"github.com/finbell/stockcast/internal/model"
)

// TradingCalendar resolves business days for the exchange a symbol trades on.
type TradingCalendar struct {
	calendar *calendar.Calendar
	fallback bool
	timezone *time.Location
}

// suffix to MIC code (ISO 10383), US listings carry no suffix
var micBySuffix = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".SW": "xswx",
	".TO": "xtse",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".SS": "xshg",
	".SZ": "xshe",
}

// NewTradingCalendar picks the exchange calendar from the symbol suffix,
// defaulting to NYSE. When no calendar resolves, a plain Mon-Fri
// fallback is used.
func NewTradingCalendar(symbol model.Symbol) *TradingCalendar {
	mic := "xnys"
	for suffix, m := range micBySuffix {
		if strings.HasSuffix(string(symbol), suffix) {
			mic = m
			break
		}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal == nil {
		log.Warn().Str("mic", mic).Msg("no exchange calendar, falling back to Mon-Fri")
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		return &TradingCalendar{fallback: true, timezone: loc}
	}
	return &TradingCalendar{calendar: cal, timezone: cal.Loc}
}

// IsTradingDay reports whether the exchange is open on the given date.
// Daily candles are stamped at UTC midnight, so the calendar is evaluated
// at local noon of the same calendar day.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	y, m, d := date.UTC().Date()
	local := time.Date(y, m, d, 12, 0, 0, 0, tc.timezone)
	if tc.fallback {
		wd := local.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return tc.calendar.IsBusinessDay(local)
}

// Check warns about candles falling outside the exchange calendar.
// The series is returned untouched; a stray date is suspicious but not fatal.
func (tc *TradingCalendar) Check(series model.PriceSeries) int {
	stray := 0
	for _, c := range series.Candles {
		if !tc.IsTradingDay(c.Time) {
			stray++
			log.Warn().
				Str("symbol", string(series.Symbol)).
				Time("date", c.Time).
				Msg("candle on a non-trading day")
		}
	}
	return stray
}
