package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nihalhub/paylite-relay/internal/models"
)

// Limits on accepted notification bodies and extracted values. The trx-id
// length bands are heuristics inferred from observed provider message formats,
// not taken from any provider specification.
const (
	MaxMessageLen = 1000
	MinMessageLen = 15

	MaxAmountPaisa = 9_999_999_999

	trxIDMinLen      = 6
	trxIDMaxLen      = 15
	bkashTrxIDMinLen = 8
)

// senderWhitelist maps normalized sender identifiers to providers.
var senderWhitelist = map[string]models.Provider{
	"bkash": models.ProviderBkash,
	"nagad": models.ProviderNagad,
	"16216": models.ProviderRocket,
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

func normalizeSender(sender string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(sender)), "")
}

// ProviderFor returns the provider a sender identifier maps to.
func ProviderFor(sender string) (models.Provider, bool) {
	provider, ok := senderWhitelist[normalizeSender(sender)]
	return provider, ok
}

// extraction is the provider-specific part of a parsed message.
type extraction struct {
	amountPaisa int64
	trxID       string
}

// Each provider uses a loosely structured natural-language template, so
// extraction is an allow-then-deny double filter: the message must carry the
// provider's "money received" marker and must not match any outgoing-payment
// marker, because words like "received" show up in both directions.
var (
	bkashPositive = regexp.MustCompile(`(?i)you have received`)
	bkashNegative = regexp.MustCompile(`(?i)recharge|cashout|cash out|withdraw|payment to|sent to|paid to|charge|merchant`)
	bkashAmount   = regexp.MustCompile(`(?i)You have received\s+Tk\s*([\d,]+(?:\.\d{1,2})?)`)
	bkashTrxID    = regexp.MustCompile(`(?i)TrxID\s+([A-Z0-9]{8,15})`)

	nagadPositive = regexp.MustCompile(`(?i)money received`)
	nagadNegative = regexp.MustCompile(`(?i)payment to|sent|paid|debit|request|cash out|withdraw`)
	nagadAmount   = regexp.MustCompile(`(?i)Amount:\s*Tk\s*([\d,]+(?:\.\d{1,2})?)`)
	nagadTrxID    = regexp.MustCompile(`(?i)TxnID:\s*([A-Z0-9]{6,15})`)

	rocketPositive = regexp.MustCompile(`(?i)received`)
	rocketNegative = regexp.MustCompile(`(?i)payment|sent|paid|transfer out|debit|cashout|withdraw|request|recharge`)
	rocketAmount   = regexp.MustCompile(`(?i)Tk\s*([\d,]+(?:\.\d{1,2})?)\s*received`)
	rocketTrxID    = regexp.MustCompile(`(?i)TxnId:\s*([A-Z0-9]{6,15})`)
)

// amountToPaisa converts a comma-grouped decimal taka amount to paisa.
func amountToPaisa(s string) (int64, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	if !d.IsPositive() {
		return 0, false
	}
	paisa := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if paisa > MaxAmountPaisa {
		return 0, false
	}
	return paisa, true
}

func extract(message string, positive, negative, amount, trxID *regexp.Regexp, minIDLen int) (extraction, bool) {
	if !positive.MatchString(message) {
		return extraction{}, false
	}
	if negative.MatchString(message) {
		return extraction{}, false
	}

	am := amount.FindStringSubmatch(message)
	if am == nil {
		return extraction{}, false
	}
	paisa, ok := amountToPaisa(am[1])
	if !ok {
		return extraction{}, false
	}

	im := trxID.FindStringSubmatch(message)
	if im == nil {
		return extraction{}, false
	}
	id := strings.ToUpper(strings.TrimSpace(im[1]))
	if len(id) < minIDLen || len(id) > trxIDMaxLen {
		return extraction{}, false
	}

	return extraction{amountPaisa: paisa, trxID: id}, true
}

func extractBkash(message string) (extraction, bool) {
	return extract(message, bkashPositive, bkashNegative, bkashAmount, bkashTrxID, bkashTrxIDMinLen)
}

func extractNagad(message string) (extraction, bool) {
	return extract(message, nagadPositive, nagadNegative, nagadAmount, nagadTrxID, trxIDMinLen)
}

func extractRocket(message string) (extraction, bool) {
	return extract(message, rocketPositive, rocketNegative, rocketAmount, rocketTrxID, trxIDMinLen)
}

// Parse turns a raw provider notification into a Transaction.
// It is pure and deterministic; any malformed or unrecognized input yields
// ok=false rather than an error.
func Parse(sender, raw string) (*models.Transaction, bool) {
	if sender == "" || raw == "" {
		return nil, false
	}

	provider, ok := ProviderFor(sender)
	if !ok {
		return nil, false
	}

	message := raw
	if runes := []rune(message); len(runes) > MaxMessageLen {
		message = string(runes[:MaxMessageLen])
	}
	message = strings.TrimSpace(message)
	if len(message) < MinMessageLen {
		return nil, false
	}

	var ext extraction
	var found bool
	switch provider {
	case models.ProviderBkash:
		ext, found = extractBkash(message)
	case models.ProviderNagad:
		ext, found = extractNagad(message)
	case models.ProviderRocket:
		ext, found = extractRocket(message)
	}
	if !found {
		return nil, false
	}

	return &models.Transaction{
		Provider:    provider,
		Sender:      strings.TrimSpace(sender),
		Message:     message,
		AmountPaisa: ext.amountPaisa,
		TrxID:       ext.trxID,
	}, true
}
