package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatedPdfPath(t *testing.T) {
	t.Run(`suffix placement check`, func(t *testing.T) {
		require.Equal(t, "timesheets/2024-05/report_validated.pdf", ValidatedPdfPath("timesheets/2024-05/report.pdf"))
		require.Equal(t, "report_validated.pdf", ValidatedPdfPath("report.pdf"))
	})

	t.Run(`no extension check`, func(t *testing.T) {
		require.Equal(t, "timesheets/report_validated", ValidatedPdfPath("timesheets/report"))
	})

	t.Run(`dotted name check`, func(t *testing.T) {
		require.Equal(t, "a/b.c/report.v2_validated.pdf", ValidatedPdfPath("a/b.c/report.v2.pdf"))
	})
}
