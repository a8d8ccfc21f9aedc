package summary

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type CsvSummaryRenderer interface {
	Render(result Result) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRendererImpl() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

func (c *CsvSummaryRendererImpl) Render(result Result) (string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	header := []string{"Activity", "Duration", "Minutes", "Events", "Color"}
	if err := writer.Write(header); err != nil {
		log.Errorf("Cannot write CSV header: %v", err)
		return "", err
	}

	for _, line := range result.Summaries {
		row := []string{
			line.Name,
			line.FormattedDuration,
			strconv.Itoa(line.TotalMinutes),
			strconv.Itoa(line.EventCount),
			line.Color,
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Cannot write CSV row for %s: %v", line.Name, err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Cannot flush CSV: %v", err)
		return "", err
	}
	return buf.String(), nil
}
