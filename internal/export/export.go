package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"go.uber.org/zap"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ParseFormat принимает "csv" или "json".
func ParseFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatJSON:
		return ExportFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format         ExportFormat
	StartTime      time.Time
	EndTime        time.Time
	PlatformFilter string // bonk / pump
	OutputDir      string
}

// LaunchExporter выгружает историю запусков кошелька в файл.
type LaunchExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewLaunchExporter(logger *zap.Logger) *LaunchExporter {
	return &LaunchExporter{
		logger: logger,
		now:    time.Now,
	}
}

// entry — запись вместе с разобранным временем.
type entry struct {
	record ledger.Record
	at     time.Time
}

// ExportLaunches exports launches of one wallet based on the provided options
func (le *LaunchExporter) ExportLaunches(wallet string, records []ledger.Record, options ExportOptions) (string, error) {
	filtered := le.filterLaunches(records, options)

	if len(filtered) == 0 {
		return "", fmt.Errorf("no launches match the export criteria")
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].at.Before(filtered[j].at)
	})

	filename := le.generateFilename(wallet, options)
	outputPath := filepath.Join(options.OutputDir, filename)

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch options.Format {
	case FormatCSV:
		err = le.exportToCSV(filtered, outputPath)
	case FormatJSON:
		err = le.exportToJSON(wallet, filtered, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	le.logger.Info("Launches exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// filterLaunches applies filters to the record list.
// Записи с неразборчивым временем не проходят временной фильтр.
func (le *LaunchExporter) filterLaunches(records []ledger.Record, options ExportOptions) []entry {
	var filtered []entry
	timed := !options.StartTime.IsZero() || !options.EndTime.IsZero()

	for _, rec := range records {
		at := rec.Time()
		if at.IsZero() && timed {
			le.logger.Debug("Skipping record with bad timestamp",
				zap.String("id", rec.ID),
				zap.String("timestamp", rec.Timestamp))
			continue
		}

		if !options.StartTime.IsZero() && at.Before(options.StartTime) {
			continue
		}
		if !options.EndTime.IsZero() && at.After(options.EndTime) {
			continue
		}
		if options.PlatformFilter != "" && rec.Platform != options.PlatformFilter {
			continue
		}

		filtered = append(filtered, entry{record: rec, at: at})
	}

	return filtered
}

func (le *LaunchExporter) generateFilename(wallet string, options ExportOptions) string {
	timestamp := le.now().Format("20060102_150405")

	prefix := "launches_all"
	if options.PlatformFilter != "" {
		prefix = "launches_" + options.PlatformFilter
	}
	if len(wallet) >= 8 {
		prefix += "_" + wallet[:8]
	}

	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, options.Format)
}

// CSVHeaders — колонки CSV-выгрузки.
func CSVHeaders() []string {
	return []string{"timestamp", "platform", "name", "symbol", "mint", "tx_id", "sol_amount", "explorer_url", "website", "twitter_url"}
}

func csvRow(rec ledger.Record) []string {
	return []string{
		rec.Timestamp,
		rec.Platform,
		rec.Name,
		rec.Symbol,
		rec.Mint,
		rec.TxID,
		strconv.FormatFloat(rec.SolAmount, 'f', -1, 64),
		rec.ExplorerURL(),
		rec.Website,
		rec.TwitterURL,
	}
}

func (le *LaunchExporter) exportToCSV(entries []entry, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write(csvRow(e.record)); err != nil {
			return fmt.Errorf("failed to write launch: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (le *LaunchExporter) exportToJSON(wallet string, entries []entry, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	records := make([]ledger.Record, len(entries))
	for i, e := range entries {
		records[i] = e.record
	}

	exportData := struct {
		ExportTime  time.Time       `json:"export_time"`
		Wallet      string          `json:"wallet"`
		LaunchCount int             `json:"launch_count"`
		Launches    []ledger.Record `json:"launches"`
		Summary     ExportSummary   `json:"summary"`
	}{
		ExportTime:  le.now(),
		Wallet:      wallet,
		LaunchCount: len(records),
		Launches:    records,
		Summary:     le.calculateSummary(entries),
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Summarize считает сводку по записям без фильтрации.
func (le *LaunchExporter) Summarize(records []ledger.Record) ExportSummary {
	return le.calculateSummary(le.filterLaunches(records, ExportOptions{}))
}

// calculateSummary ожидает записи, отсортированные по времени.
func (le *LaunchExporter) calculateSummary(entries []entry) ExportSummary {
	summary := ExportSummary{
		TotalLaunches: len(entries),
		ByPlatform:    make(map[string]int),
	}
	if len(entries) == 0 {
		return summary
	}

	summary.StartDate = entries[0].at
	summary.EndDate = entries[len(entries)-1].at

	for _, e := range entries {
		summary.ByPlatform[e.record.Platform]++
		summary.TotalSolSpent += e.record.SolAmount
	}
	summary.AvgSolPerLaunch = summary.TotalSolSpent / float64(len(entries))

	return summary
}

// ExportSummary contains summary statistics for exported launches
type ExportSummary struct {
	TotalLaunches   int            `json:"total_launches"`
	ByPlatform      map[string]int `json:"by_platform"`
	TotalSolSpent   float64        `json:"total_sol_spent"`
	AvgSolPerLaunch float64        `json:"avg_sol_per_launch"`
	StartDate       time.Time      `json:"start_date"`
	EndDate         time.Time      `json:"end_date"`
}

// DailyReport represents a daily launch report
type DailyReport struct {
	Date            time.Time       `json:"date"`
	LaunchCount     int             `json:"launch_count"`
	Summary         ExportSummary   `json:"summary"`
	HourlyBreakdown []HourlyStats   `json:"hourly_breakdown"`
	Launches        []ledger.Record `json:"launches"`
}

// HourlyStats represents launch statistics for an hour
type HourlyStats struct {
	Hour        int     `json:"hour"`
	LaunchCount int     `json:"launch_count"`
	SolSpent    float64 `json:"sol_spent"`
}

// ExportDailyReport exports a daily summary report. Пустой день не создаёт файл.
func (le *LaunchExporter) ExportDailyReport(records []ledger.Record, date time.Time, outputDir string) (string, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	filtered := le.filterLaunches(records, ExportOptions{StartTime: startOfDay, EndTime: endOfDay})
	if len(filtered) == 0 {
		le.logger.Info("No launches for daily report", zap.Time("date", startOfDay))
		return "", nil
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].at.Before(filtered[j].at)
	})

	launches := make([]ledger.Record, len(filtered))
	for i, e := range filtered {
		launches[i] = e.record
	}
	report := DailyReport{
		Date:            startOfDay,
		LaunchCount:     len(filtered),
		Summary:         le.calculateSummary(filtered),
		HourlyBreakdown: calculateHourlyBreakdown(filtered, date.Location()),
		Launches:        launches,
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, fmt.Sprintf("daily_report_%s.json", startOfDay.Format("20060102")))
	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	le.logger.Info("Daily report exported",
		zap.String("file", outputPath),
		zap.Time("date", startOfDay),
		zap.Int("launches", len(filtered)))

	return outputPath, nil
}

func calculateHourlyBreakdown(entries []entry, loc *time.Location) []HourlyStats {
	hourlyMap := make(map[int]*HourlyStats)

	for _, e := range entries {
		hour := e.at.In(loc).Hour()
		stats, exists := hourlyMap[hour]
		if !exists {
			stats = &HourlyStats{Hour: hour}
			hourlyMap[hour] = stats
		}
		stats.LaunchCount++
		stats.SolSpent += e.record.SolAmount
	}

	var breakdown []HourlyStats
	for hour := 0; hour < 24; hour++ {
		if stats, exists := hourlyMap[hour]; exists {
			breakdown = append(breakdown, *stats)
		}
	}
	return breakdown
}
