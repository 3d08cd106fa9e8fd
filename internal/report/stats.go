package report

import (
	"flixmap/internal/crawler"
	"flixmap/internal/models"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TypeStats summarises the mappings of one content type.
type TypeStats struct {
	Type       models.ContentType
	Count      int
	Contiguous int
	Highest    int
}

type Stats struct {
	Types           []TypeStats
	Mappings        int
	SkipEpisodes    int
	SkipSubmissions int
}

func Collect(mappings *models.MappingStore, skips *models.SkipStore) Stats {
	counts := mappings.CountByType()
	stats := Stats{
		Mappings:        mappings.Len(),
		SkipEpisodes:    skips.EpisodeCount(),
		SkipSubmissions: skips.SubmissionCount(),
	}
	for _, t := range []models.ContentType{models.Movie, models.Series} {
		ts := TypeStats{Type: t, Count: counts[t]}
		ts.Contiguous, _ = crawler.Latest(mappings, crawler.ModeDescending, t)
		ts.Highest, _ = crawler.Latest(mappings, "", t)
		stats.Types = append(stats.Types, ts)
	}
	return stats
}

func Render(w io.Writer, s Stats) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Type", "Mappings", "Contiguous to", "Highest id"})
	for _, ts := range s.Types {
		tw.AppendRow(table.Row{string(ts.Type), ts.Count, idCell(ts.Contiguous), idCell(ts.Highest)})
	}
	tw.AppendFooter(table.Row{"total", s.Mappings, "", ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	skips := table.NewWriter()
	skips.SetStyle(table.StyleRounded)
	skips.AppendHeader(table.Row{"Skip episodes", "Submissions"})
	skips.AppendRow(table.Row{s.SkipEpisodes, s.SkipSubmissions})

	_, err := io.WriteString(w, tw.Render()+"\n"+skips.Render()+"\n")
	return err
}

func idCell(id int) string {
	if id == 0 {
		return "-"
	}
	return strconv.Itoa(id)
}
