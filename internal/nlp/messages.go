package nlp

import "fmt"

// Kind classifies an engine response.
type Kind string

const (
	KindAnswer                Kind = "answer"
	KindNoData                Kind = "no_data"
	KindOutOfDomain           Kind = "out_of_domain"
	KindUnrecognizedVegetable Kind = "unrecognized_vegetable"
	KindUnresolvedTimeFrame   Kind = "unresolved_time_frame"
	KindFutureYear            Kind = "future_year"
	KindInvalidDate           Kind = "invalid_date"
	KindInternal              Kind = "internal"
)

// Rejection is a question the engine answers with a clarification instead
// of data.
type Rejection struct {
	Kind    Kind
	Message string
}

const (
	msgOutOfDomain   = "Maaf, fitur ini hanya untuk melakukan pengecekan terhadap berat yang sudah ditimbang. Contoh: 'berapa berat bayam hari ini?'"
	msgNoDataAtAll   = "Tidak ada data sayuran yang tersedia."
	msgInternalError = "Maaf, terjadi kesalahan saat memproses pertanyaan. Silakan coba lagi dengan kalimat lain."
)

func unrecognizedVegetableMessage(names []string) string {
	return fmt.Sprintf("Maaf, saya hanya mengenali jenis sayuran: %s. Sebutkan nama sayuran atau 'semua sayuran'.", joinIndonesian(names))
}

func futureYearMessage(year, current int) string {
	return fmt.Sprintf("Tahun %d belum selesai. Data hanya tersedia sampai tahun %d.", year, current)
}

func invalidDateMessage(day int, monthName string, year int) string {
	return fmt.Sprintf("Maaf, tanggal %d %s %d tidak valid.", day, monthName, year)
}

// unresolvedMessage asks for a time period, with examples shaped like the
// question that was asked.
func unresolvedMessage(intent Intent, year int) string {
	subject := "bayam"
	if len(intent.Selector.Names) > 0 {
		subject = intent.Selector.Names[0]
	}

	var first, second string
	switch {
	case intent.Selector.Kind == SelectAll:
		first = "total semua sayuran bulan ini"
		second = fmt.Sprintf("berat sayuran tahun %d", year-1)
	case intent.Statistic == StatAverage:
		first = "rata-rata " + subject + " minggu ini"
		second = "rata-rata " + subject + " bulan lalu"
	case intent.Statistic == StatMaximum:
		first = "berat maksimum " + subject + " minggu ini"
		second = "berat maksimum " + subject + " bulan lalu"
	case intent.Statistic == StatMinimum:
		first = "berat minimum " + subject + " minggu ini"
		second = "berat minimum " + subject + " bulan lalu"
	default:
		first = fmt.Sprintf("total %s september %d", subject, year)
		second = fmt.Sprintf("%s tahun %d", subject, year-1)
	}
	return fmt.Sprintf("Maaf, mohon sertakan periode waktu yang jelas (misal: '%s' atau '%s')", first, second)
}
