package cli

import (
	"alfredoptarigan/resume-detector/internal/config"
	"alfredoptarigan/resume-detector/internal/services"
)

// App holds the services the commands drive.
type App struct {
	Config    *config.Config
	Source    services.DocumentSource
	Inspector services.PDFInspector
	Composer  services.ComposerService
	Viewer    services.ReportViewer
	Presenter services.ReportPresenter
	Telemetry services.NonCritical
}

func NewApp(cfg *config.Config) *App {
	client := services.NewAnalysisClient()
	classifier := services.NewClassifier(cfg.Report.StrictLabels, cfg.Report.Schema == config.SchemaLegacy)
	telemetry := services.NewNonCriticalPool(cfg.Telemetry.Workers, cfg.Telemetry.QueueSize)

	return &App{
		Config:    cfg,
		Source:    services.NewDocumentSource(),
		Inspector: services.NewPDFInspector(),
		Composer: services.NewComposerService(
			cfg.Endpoints,
			cfg.Documents.AcceptedType,
			services.NewDocumentEncoder(),
			client,
			telemetry,
		),
		Viewer:    services.NewReportViewer(cfg.Endpoints, client, classifier),
		Presenter: services.NewReportPresenter(classifier),
		Telemetry: telemetry,
	}
}
