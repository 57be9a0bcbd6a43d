package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/medbook/internal/client/gateway"
)

// notify prints a one-line notification.
func (a *App) notify(msg string) {
	a.printf("! %s\n", msg)
}

// toast reports err to the user, preferring the server's own message over
// fallback.
func (a *App) toast(ctx context.Context, err error, fallback string) {
	a.log.Debug(ctx, "command failed", "error", err)
	if errors.Is(err, gateway.ErrUnavailable) {
		a.notify("Server unavailable, try again later")
		return
	}
	a.notify(gateway.MessageFrom(err, fallback))
}

// table writes aligned rows under header.
func table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
