package audit

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/provaudit/internal/aireview"
	"github.com/temirov/provaudit/internal/githubrepo"
	"github.com/temirov/provaudit/internal/lockfile"
)

const (
	lockfileReadErrorTemplateConstant      = "unable to read lock file %s: %w"
	extractedProvidersTemplateConstant     = "Found %d provider(s) in %s\n"
	probeStepMessageConstant               = "Checking GitHub repositories..."
	scoreStepMessageConstant               = "Fetching OpenSSF scorecards..."
	identityProgressTemplateConstant       = "  %s: %s\n"
	summarySkippedMessageConstant          = "AI analysis skipped: no API key configured"
	summaryFailureTemplateConstant         = "AI analysis failed: %v\n"
	aiAnalysisHeaderConstant               = "AI analysis:"
	aiAnalysisBlockTemplateConstant        = "\n%s\n%s\n"
	tableRowTemplateConstant               = "%45s  %-9s  %s\n"
	tableHeaderProviderConstant            = "PROVIDER"
	tableHeaderVersionConstant             = "VERSION"
	tableHeaderStatusConstant              = "STATUS"
	debugMatcherCountTemplateConstant      = "matcher %s produced %d candidate(s)\n"
	debugRawURLTemplateConstant            = "raw url: %s\n"
	debugProbeTemplateConstant             = "probe %s: status=%s http=%d transport_error=%v\n"
	debugScoreTemplateConstant             = "scorecard %s: status=%s http=%d transport_error=%v\n"
	logMessageAuditStartedConstant         = "provider audit started"
	logMessageAuditCompletedConstant       = "provider audit completed"
	logFieldLockfilePathConstant           = "lockfile_path"
	logFieldProviderCountConstant          = "provider_count"
	progressRepositoryFoundConstant        = "repository found"
	progressRepositoryMissingConstant      = "no GitHub repo"
	progressRepositoryUnknownConstant      = "status unknown"
	progressScorecardScoredTemplate        = "score %.2f"
	progressScorecardMissingConstant       = "no scorecard"
	progressScorecardUnavailableConstant   = "score unavailable"
)

// Service coordinates extraction, enrichment, summary, and presentation.
type Service struct {
	extractor         LockfileExtractor
	repositoryChecker RepositoryChecker
	scorecardFetcher  ScorecardFetcher
	summarizer        BatchSummarizer
	probePacer        Pacer
	scorePacer        Pacer
	outputWriter      io.Writer
	errorWriter       io.Writer
	logger            *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(extractor LockfileExtractor, repositoryChecker RepositoryChecker, scorecardFetcher ScorecardFetcher, summarizer BatchSummarizer, probePacer Pacer, scorePacer Pacer, outputWriter io.Writer, errorWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		extractor:         extractor,
		repositoryChecker: repositoryChecker,
		scorecardFetcher:  scorecardFetcher,
		summarizer:        summarizer,
		probePacer:        probePacer,
		scorePacer:        scorePacer,
		outputWriter:      outputWriter,
		errorWriter:       errorWriter,
		logger:            logger,
	}
}

// Run executes the audit according to the provided options. A missing or
// unreadable lock file is the only fatal outcome; every network failure is
// downgraded to a status tag on the affected identity.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	lockfileBytes, readError := os.ReadFile(options.LockfilePath)
	if readError != nil {
		return fmt.Errorf(lockfileReadErrorTemplateConstant, options.LockfilePath, readError)
	}

	extraction := service.extractor.Extract(string(lockfileBytes))

	service.logger.Info(
		logMessageAuditStartedConstant,
		zap.String(logFieldLockfilePathConstant, options.LockfilePath),
		zap.Int(logFieldProviderCountConstant, len(extraction.Providers)),
	)

	fmt.Fprintf(service.outputWriter, extractedProvidersTemplateConstant, len(extraction.Providers), options.LockfilePath)

	if options.DebugOutput {
		service.writeExtractionDiagnostics(extraction)
	}

	providerAudits := make([]ProviderAudit, 0, len(extraction.Providers))
	for _, providerReference := range extraction.Providers {
		providerAudits = append(providerAudits, ProviderAudit{
			Reference:        providerReference,
			RepositoryExists: TernaryValueUnknown,
		})
	}

	service.checkRepositories(executionContext, providerAudits, options)
	service.fetchScorecards(executionContext, providerAudits, options)
	service.summarizeBatch(executionContext, providerAudits)
	service.renderReportTable(providerAudits)

	service.logger.Info(
		logMessageAuditCompletedConstant,
		zap.Int(logFieldProviderCountConstant, len(providerAudits)),
	)

	return nil
}

func (service *Service) writeExtractionDiagnostics(extraction lockfile.Extraction) {
	for _, candidateCount := range extraction.MatcherCandidateCounts {
		fmt.Fprintf(service.errorWriter, debugMatcherCountTemplateConstant, candidateCount.RuleName, candidateCount.CandidateCount)
	}
	for _, rawURL := range extraction.RawURLs {
		fmt.Fprintf(service.errorWriter, debugRawURLTemplateConstant, rawURL)
	}
}

func (service *Service) checkRepositories(executionContext context.Context, providerAudits []ProviderAudit, options CommandOptions) {
	fmt.Fprintln(service.outputWriter, probeStepMessageConstant)

	for auditIndex := range providerAudits {
		reference := providerAudits[auditIndex].Reference
		probeOutcome := service.repositoryChecker.CheckRepository(executionContext, reference.Organization, reference.Name)
		providerAudits[auditIndex].RepositoryExists = ternaryFromExistenceStatus(probeOutcome.Status)

		fmt.Fprintf(service.outputWriter, identityProgressTemplateConstant, reference.FullName(), probeProgressText(probeOutcome.Status))
		if options.DebugOutput {
			fmt.Fprintf(service.errorWriter, debugProbeTemplateConstant, reference.FullName(), probeOutcome.Status, probeOutcome.HTTPStatusCode, probeOutcome.TransportError)
		}

		service.probePacer.Wait(executionContext)
	}
}

func (service *Service) fetchScorecards(executionContext context.Context, providerAudits []ProviderAudit, options CommandOptions) {
	fmt.Fprintln(service.outputWriter, scoreStepMessageConstant)

	for auditIndex := range providerAudits {
		if providerAudits[auditIndex].RepositoryExists != TernaryValueYes {
			continue
		}

		reference := providerAudits[auditIndex].Reference
		repositoryPath := githubrepo.RepositoryPath(reference.Organization, reference.Name)
		assessment := service.scorecardFetcher.Fetch(executionContext, repositoryPath)
		providerAudits[auditIndex].Assessment = assessment

		fmt.Fprintf(service.outputWriter, identityProgressTemplateConstant, reference.FullName(), scoreProgressText(assessment))
		if options.DebugOutput {
			fmt.Fprintf(service.errorWriter, debugScoreTemplateConstant, reference.FullName(), assessment.Status, assessment.HTTPStatusCode, assessment.TransportError)
		}

		service.scorePacer.Wait(executionContext)
	}
}

func (service *Service) summarizeBatch(executionContext context.Context, providerAudits []ProviderAudit) {
	if service.summarizer == nil || !service.summarizer.Configured() {
		fmt.Fprintln(service.errorWriter, summarySkippedMessageConstant)
		return
	}

	scoredAnalyses := []aireview.ProviderAnalysis{}
	for _, providerAudit := range providerAudits {
		if !providerAudit.Assessment.Scored() {
			continue
		}
		scoredAnalyses = append(scoredAnalyses, aireview.NewProviderAnalysis(
			providerAudit.Reference.FullName(),
			providerAudit.RepositoryExists == TernaryValueYes,
			providerAudit.Assessment.Result,
		))
	}

	payload := aireview.NewAnalysisPayload(len(providerAudits), scoredAnalyses)

	summaryText, summarizeError := service.summarizer.Summarize(executionContext, payload)
	if summarizeError != nil {
		fmt.Fprintf(service.errorWriter, summaryFailureTemplateConstant, summarizeError)
		return
	}

	fmt.Fprintf(service.outputWriter, aiAnalysisBlockTemplateConstant, aiAnalysisHeaderConstant, summaryText)
}

func (service *Service) renderReportTable(providerAudits []ProviderAudit) {
	fmt.Fprintln(service.outputWriter)
	fmt.Fprintf(service.outputWriter, tableRowTemplateConstant, tableHeaderProviderConstant, tableHeaderVersionConstant, tableHeaderStatusConstant)
	for _, providerAudit := range providerAudits {
		fmt.Fprintf(
			service.outputWriter,
			tableRowTemplateConstant,
			providerAudit.Reference.FullName(),
			versionCell(providerAudit.Reference),
			statusCell(providerAudit),
		)
	}
}
