package notifier

import (
	"fmt"
	"html"
	"strings"

	"NiftyPulse/internal/model"
)

// FormatSignal formats an evaluation result into a Telegram message.
func FormatSignal(symbol string, rec *model.ResultRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> | %s\n\n", actionIcon(rec.Signal), html.EscapeString(symbol), rec.Signal,
		rec.Time.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Reason: %s\n", html.EscapeString(rec.Reason)))
	b.WriteString(fmt.Sprintf("Bias: %s | Structure: %s\n\n", rec.Bias, rec.Structure))

	b.WriteString(fmt.Sprintf("Price: %s (H %s / L %s)\n", num(rec.Price), num(rec.DayHigh), num(rec.DayLow)))
	b.WriteString(fmt.Sprintf("VWAP: %s | ATR: %s\n", num(rec.VWAP), num(rec.ATR)))
	b.WriteString(fmt.Sprintf("EMA9/20 1m: %s / %s\n", num(rec.EMA9_1m), num(rec.EMA20_1m)))
	b.WriteString(fmt.Sprintf("EMA9/20 5m: %s / %s\n", num(rec.EMA9_5m), num(rec.EMA20_5m)))
	b.WriteString(fmt.Sprintf("EMA9/20 15m: %s / %s\n", num(rec.EMA9_15m), num(rec.EMA20_15m)))

	if rec.Signal != model.ActionWait {
		b.WriteString(fmt.Sprintf("\nStoploss: %s | Target: %s\n", num(rec.Stoploss), num(rec.Target)))
	}
	return b.String()
}

// FormatError formats a failed evaluation.
func FormatError(err error) string {
	return fmt.Sprintf("❌ Evaluation failed: %s", html.EscapeString(err.Error()))
}

// FormatHelp lists the supported bot commands.
func FormatHelp() string {
	return "Available commands:\n• /nifty - current signal\n• /help - this message"
}

func actionIcon(a model.Action) string {
	switch a {
	case model.ActionCall:
		return "🟢"
	case model.ActionPut:
		return "🔴"
	}
	return "⏸"
}

func num(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
