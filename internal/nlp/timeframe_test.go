package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveOK(t *testing.T, q string) TimeFrame {
	t.Helper()
	tf, rej := newTestResolver().Resolve(q)
	require.Nil(t, rej, "query %q rejected: %+v", q, rej)
	return tf
}

func TestResolve_Today(t *testing.T) {
	for _, q := range []string{"berat bayam hari ini", "berat bayam sekarang", "bayam hr ini", "skrg bayam"} {
		tf := resolveOK(t, q)
		assert.Equal(t, "hari ini", tf.Rule, q)
		assert.Equal(t, "hari ini (15 Oktober 2026)", tf.FullDescription, q)
		assert.Equal(t, wibAt(time.October, 15, 0), tf.Start, q)
		assert.Equal(t, time.Date(2026, time.October, 15, 23, 59, 59, 999_000_000, wib), tf.End, q)
		assert.True(t, tf.Relative)
	}
}

func TestResolve_Yesterday(t *testing.T) {
	for _, q := range []string{"berat bayam kemarin", "bayam kmrn", "bayam kemaren"} {
		tf := resolveOK(t, q)
		assert.Equal(t, "kemarin", tf.Rule, q)
		assert.Equal(t, "kemarin (14 Oktober 2026)", tf.FullDescription, q)
		assert.Equal(t, wibAt(time.October, 14, 0), tf.Start, q)
	}
}

func TestResolve_Weeks(t *testing.T) {
	tf := resolveOK(t, "berat bayam minggu ini")
	assert.Equal(t, "minggu ini", tf.Rule)
	assert.Equal(t, "minggu ini (12 Oktober 2026 - 18 Oktober 2026)", tf.FullDescription)
	assert.Equal(t, wibAt(time.October, 12, 0), tf.Start)

	tf = resolveOK(t, "berat bayam pekan lalu")
	assert.Equal(t, "minggu lalu", tf.Rule)
	assert.Equal(t, "minggu lalu (05 Oktober 2026 - 11 Oktober 2026)", tf.FullDescription)
	assert.Equal(t, wibAt(time.October, 5, 0), tf.Start)
	assert.Equal(t, 11, tf.End.Day())

	tf = resolveOK(t, "bayam minggu kemarin")
	assert.Equal(t, "minggu lalu", tf.Rule)
}

func TestResolve_Months(t *testing.T) {
	tf := resolveOK(t, "berat bayam bulan ini")
	assert.Equal(t, "bulan ini (Oktober 2026)", tf.FullDescription)
	assert.Equal(t, wibAt(time.October, 1, 0), tf.Start)
	assert.Equal(t, 31, tf.End.Day())

	tf = resolveOK(t, "berat bayam bulan lalu")
	assert.Equal(t, "bulan lalu (September 2026)", tf.FullDescription)
	assert.Equal(t, wibAt(time.September, 1, 0), tf.Start)
	assert.Equal(t, 30, tf.End.Day())
}

func TestResolve_LastMonthAcrossYearBoundary(t *testing.T) {
	cal := testCalendar()
	cal.Now = func() time.Time { return time.Date(2026, time.January, 10, 9, 0, 0, 0, wib) }

	tf, rej := NewResolver(cal, DefaultLexicon()).Resolve("bayam bulan lalu")
	require.Nil(t, rej)
	assert.Equal(t, "bulan lalu (Desember 2025)", tf.FullDescription)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, wib), tf.Start)
}

func TestResolve_Years(t *testing.T) {
	tf := resolveOK(t, "total bayam tahun ini")
	assert.Equal(t, "tahun ini (2026)", tf.FullDescription)
	assert.True(t, tf.Relative)

	tf = resolveOK(t, "total bayam tahun lalu")
	assert.Equal(t, "tahun lalu (2025)", tf.FullDescription)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, wib), tf.Start)

	tf = resolveOK(t, "total bayam tahun kemarin")
	assert.Equal(t, "tahun lalu", tf.Rule)

	tf = resolveOK(t, "total bayam thn 2023")
	assert.Equal(t, "tahun", tf.Rule)
	assert.Equal(t, "tahun 2023", tf.FullDescription)
	assert.False(t, tf.Relative)
	assert.Equal(t, 31, tf.End.Day())
	assert.Equal(t, time.December, tf.End.Month())
}

func TestResolve_MonthName(t *testing.T) {
	for _, q := range []string{"bayam september 2024", "bayam sept 2024", "bayam sep 2024"} {
		tf := resolveOK(t, q)
		assert.Equal(t, "bulan", tf.Rule, q)
		assert.Equal(t, "bulan September 2024", tf.FullDescription, q)
		assert.Equal(t, time.Date(2024, time.September, 1, 0, 0, 0, 0, wib), tf.Start, q)
	}

	tf := resolveOK(t, "bayam februari")
	assert.Equal(t, "bulan Februari 2026", tf.FullDescription)
}

func TestResolve_MonthOfLastYear(t *testing.T) {
	tf := resolveOK(t, "berat bayam maret tahun lalu")
	assert.Equal(t, "bulan tahun lalu", tf.Rule)
	assert.Equal(t, "bulan Maret tahun lalu (2025)", tf.FullDescription)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, wib), tf.Start)
	assert.Equal(t, 31, tf.End.Day())
}

func TestResolve_ExplicitDate(t *testing.T) {
	tf := resolveOK(t, "berat bayam tanggal 5 maret 2024")
	assert.Equal(t, "tanggal", tf.Rule)
	assert.Equal(t, "tanggal 05 Maret 2024", tf.FullDescription)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, wib), tf.Start)
	assert.Equal(t, time.Date(2024, time.March, 5, 23, 59, 59, 999_000_000, wib), tf.End)

	tf = resolveOK(t, "berat bayam 29 feb 2024")
	assert.Equal(t, "tanggal", tf.Rule)
	assert.Equal(t, time.February, tf.Start.Month())
}

func TestResolve_InvalidDate(t *testing.T) {
	_, rej := newTestResolver().Resolve("berat bayam 31 februari 2024")
	require.NotNil(t, rej)
	assert.Equal(t, KindInvalidDate, rej.Kind)
	assert.Equal(t, "Maaf, tanggal 31 Februari 2024 tidak valid.", rej.Message)
}

func TestResolve_Weekday(t *testing.T) {
	tf := resolveOK(t, "berat bayam hari senin")
	assert.Equal(t, "hari", tf.Rule)
	assert.Equal(t, "hari Senin", tf.FullDescription)
	require.NotNil(t, tf.Weekday)
	assert.Equal(t, time.Monday, *tf.Weekday)
	assert.True(t, tf.Start.IsZero())
	assert.True(t, tf.End.IsZero())

	tf = resolveOK(t, "bayam jum'at")
	assert.Equal(t, time.Friday, *tf.Weekday)
}

func TestResolve_FutureYear(t *testing.T) {
	r := newTestResolver()
	for _, q := range []string{"total bayam tahun 2099", "bayam september 2099", "bayam 1 mei 2099"} {
		_, rej := r.Resolve(q)
		require.NotNil(t, rej, q)
		assert.Equal(t, KindFutureYear, rej.Kind, q)
		assert.Equal(t, "Tahun 2099 belum selesai. Data hanya tersedia sampai tahun 2026.", rej.Message, q)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	_, rej := newTestResolver().Resolve("berapa berat bayam")
	require.NotNil(t, rej)
	assert.Equal(t, KindUnresolvedTimeFrame, rej.Kind)
	assert.Empty(t, rej.Message)
}

func TestResolve_Precedence(t *testing.T) {
	cases := map[string]string{
		"total bayam tahun 2023 bulan ini": "tahun",
		"bulan ini total bayam tahun 2023": "tahun",
		"bayam september tahun lalu":       "bulan tahun lalu",
		"bayam 5 maret 2024 bulan lalu":    "tanggal",
		"bayam maret minggu ini":           "bulan",
		"bayam bulan lalu minggu ini":      "bulan lalu",
		"bayam minggu lalu hari ini":       "minggu lalu",
		"bayam hari senin minggu ini":      "minggu ini",
		"bayam senin kemarin":              "hari",
		"bayam kemarin dan hari ini":       "kemarin",
		"bayam hari ini tahun lalu":        "hari ini",
	}
	r := newTestResolver()
	for q, want := range cases {
		tf, rej := r.Resolve(q)
		require.Nil(t, rej, q)
		assert.Equal(t, want, tf.Rule, q)
	}
}

func TestResolver_RulesListedInPrecedenceOrder(t *testing.T) {
	assert.Equal(t, []string{
		"bulan tahun lalu", "tahun", "tanggal", "bulan", "bulan lalu", "minggu lalu",
		"minggu ini", "bulan ini", "hari", "kemarin", "hari ini", "tahun lalu", "tahun ini",
	}, newTestResolver().Rules())
}

func TestResolve_CountedWeeksReadAsSunday(t *testing.T) {
	tf := resolveOK(t, "berat bayam 2 minggu terakhir")
	assert.Equal(t, "hari", tf.Rule)
	require.NotNil(t, tf.Weekday)
	assert.Equal(t, time.Sunday, *tf.Weekday)
}
