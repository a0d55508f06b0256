// Package pipeline orchestrates the post-approval intake flow against the
// case-management platform: contact and matter resolution, verified field
// writes, stage advancement, retainer generation, deadline scheduling, and
// the client notification email.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/richards-law/intake-cli/internal/config"
	"github.com/richards-law/intake-cli/internal/docgen"
	"github.com/richards-law/intake-cli/internal/mailer"
	"github.com/richards-law/intake-cli/internal/model"
	"github.com/richards-law/intake-cli/pkg/clio"
)

const (
	dataVerifiedStage = "Data Verified"
	totalSteps        = 9
)

// Pipeline runs the nine-step approval flow. Construct once per process;
// Run is safe to call from concurrent requests because all shared state
// lives inside the client.
type Pipeline struct {
	client clio.Client
	mailer mailer.Mailer
	cfg    *config.Config
}

// New builds a Pipeline.
func New(client clio.Client, m mailer.Mailer, cfg *config.Config) *Pipeline {
	return &Pipeline{
		client: client,
		mailer: m,
		cfg:    cfg,
	}
}

// Run executes the approval pipeline over a verified extraction. Steps run
// strictly in order; each records its own terminal status instead of
// propagating failures. Only a failed authentication or a missing matter
// aborts the run.
func (p *Pipeline) Run(ctx context.Context, ex *model.ExtractionResult, existingMatterID int64) *model.PipelineResult {
	log := zap.L().With(zap.Int64("existing_matter_id", existingMatterID))
	log.Info("pipeline: starting approval run")

	result := &model.PipelineResult{
		// Fixed capacity keeps step pointers stable across appends.
		Steps: make([]model.PipelineStep, 0, totalSteps),
	}
	startStep := func(name string) *model.PipelineStep {
		result.Steps = append(result.Steps, model.PipelineStep{Name: name, Status: model.StepRunning})
		return &result.Steps[len(result.Steps)-1]
	}
	fail := func(step *model.PipelineStep, err error) {
		step.Status = model.StepError
		step.Detail = err.Error()
		log.Error("pipeline: step failed", zap.String("step", step.Name), zap.Error(err))
	}

	plaintiff := ex.PartyByRole(model.RolePlaintiff)
	defendant := ex.PartyByRole(model.RoleDefendant)
	plaintiffName := plaintiff.DisplayName()
	defendantName := defendant.DisplayName()

	// Step 1: authenticate.
	step := startStep("authenticate")
	var attorneyID int64
	var attorneyName string
	me, err := p.client.WhoAmI(ctx)
	if err != nil {
		fail(step, err)
		return result
	}
	attorneyID = me.ID
	attorneyName = me.Name
	step.Status = model.StepSuccess
	step.Detail = fmt.Sprintf("Authenticated as %s (id=%d)", attorneyName, attorneyID)
	log.Info(step.Detail)

	// Step 2: map custom field ids. Failure degrades the field write to a
	// skip rather than aborting.
	step = startStep("map_custom_fields")
	fieldMap, err := p.client.FieldIDMap(ctx)
	if err != nil {
		fail(step, err)
		fieldMap = nil
	} else {
		step.Status = model.StepSuccess
		step.Detail = fmt.Sprintf("Mapped %d custom fields", len(fieldMap))
	}

	// Step 3: find or create the plaintiff contact. A pre-supplied matter
	// already has its client attached, so contact resolution is skipped.
	step = startStep("create_contact")
	var contactID int64
	switch {
	case existingMatterID != 0:
		step.Status = model.StepSkipped
		step.Detail = fmt.Sprintf("Using existing matter %d", existingMatterID)
	case plaintiff != nil && plaintiff.FullName.Value != "":
		contactID, err = clio.FindOrCreateContact(ctx, p.client,
			plaintiff.FullName.Value, p.cfg.Intake.ContactEmail, plaintiff.Phone, plaintiff.Address)
		if err != nil {
			fail(step, err)
		} else {
			step.Status = model.StepSuccess
			step.Detail = fmt.Sprintf("Resolved contact '%s' (id=%d)", plaintiffName, contactID)
		}
	default:
		step.Status = model.StepSkipped
		step.Detail = "No plaintiff found in extraction data"
	}

	// Step 4: resolve the matter. Fatal when nothing resolves; everything
	// downstream hangs off the matter id.
	step = startStep("create_matter")
	description := fmt.Sprintf("%s v %s - Personal Injury", plaintiffName, defendantName)
	matter, practiceAreaID, err := clio.ResolveMatter(ctx, p.client, existingMatterID, contactID, description, attorneyID)
	if err != nil {
		fail(step, err)
		return result
	}
	displayNumber := matter.DisplayNumber
	if existingMatterID != 0 {
		step.Status = model.StepSkipped
		step.Detail = fmt.Sprintf("Using existing matter %d", existingMatterID)
	} else {
		step.Status = model.StepSuccess
		step.Detail = fmt.Sprintf("Created matter #%s (id=%d)", displayNumber, matter.ID)
	}

	matterID := matter.ID
	result.MatterID = matterID
	result.MatterURL = fmt.Sprintf("%s/matters/%d", strings.TrimRight(p.cfg.Clio.BaseURL, "/"), matterID)

	statuteISO := ""
	if accident, dateErr := docgen.ParseISODate(ex.AccidentDate); dateErr == nil {
		statuteISO = docgen.StatuteDate(accident, p.cfg.Statute.Years).Format("2006-01-02")
	}

	// Step 5: write verified custom fields against a fresh etag.
	step = startStep("update_custom_fields")
	if len(fieldMap) == 0 {
		step.Status = model.StepSkipped
		step.Detail = "No field map available"
	} else if values := BuildFieldValues(ex, fieldMap, plaintiff, defendant, statuteISO); len(values) == 0 {
		step.Status = model.StepSkipped
		step.Detail = "No field values to update"
	} else if current, ferr := p.client.GetMatter(ctx, matterID); ferr != nil {
		fail(step, ferr)
	} else {
		if displayNumber == "" {
			displayNumber = current.DisplayNumber
		}
		if uerr := p.client.UpdateMatterCustomFields(ctx, matterID, current.Etag, values); uerr != nil {
			fail(step, uerr)
		} else {
			step.Status = model.StepSuccess
			step.Detail = fmt.Sprintf("Updated %d custom fields", len(values))
		}
	}

	// Step 6: advance the matter stage.
	step = startStep("update_stage")
	if stage, serr := p.client.StageByName(ctx, dataVerifiedStage, practiceAreaID); serr != nil {
		fail(step, serr)
	} else if stage == nil {
		step.Status = model.StepSkipped
		step.Detail = fmt.Sprintf("Stage '%s' not found", dataVerifiedStage)
	} else if current, ferr := p.client.GetMatter(ctx, matterID); ferr != nil {
		fail(step, ferr)
	} else if uerr := p.client.UpdateMatterStage(ctx, matterID, current.Etag, stage.ID); uerr != nil {
		fail(step, uerr)
	} else {
		step.Status = model.StepSuccess
		step.Detail = fmt.Sprintf("Stage changed to '%s' (id=%d)", dataVerifiedStage, stage.ID)
	}

	// Step 7: generate the retainer agreement.
	step = startStep("generate_retainer")
	retainerBytes := p.generateRetainer(ctx, step, ex, matterID, displayNumber, attorneyName, plaintiffName)

	// Step 8: schedule the statute-of-limitations deadline.
	step = startStep("create_calendar_entry")
	if ex.AccidentDate == "" || attorneyID == 0 {
		step.Status = model.StepSkipped
		step.Detail = "Missing accident date or attorney id"
	} else if cerr := CreateStatuteEntry(ctx, p.client, matterID, ex.AccidentDate,
		plaintiffName, defendantName, attorneyID, attorneyName, p.cfg.Statute.Years); cerr != nil {
		fail(step, cerr)
	} else {
		step.Status = model.StepSuccess
		step.Detail = "SOL calendar entry created"
	}

	// Step 9: notify the client.
	step = startStep("send_email")
	p.sendEmail(ctx, step, ex, plaintiff, plaintiffName, retainerBytes)

	result.Success = result.AllStepsOK()
	log.Info("pipeline: run complete",
		zap.Int64("matter_id", matterID),
		zap.Int("steps", len(result.Steps)),
		zap.Bool("success", result.Success),
	)
	return result
}

// generateRetainer tries remote template generation first, polling for the
// rendered binary, and falls back to local generation when the template is
// missing or the version never materializes. A run with no document at all
// still succeeds; the email step just sends without an attachment.
func (p *Pipeline) generateRetainer(
	ctx context.Context,
	step *model.PipelineStep,
	ex *model.ExtractionResult,
	matterID int64,
	displayNumber, attorneyName, plaintiffName string,
) []byte {
	local := func() []byte {
		pdf, err := docgen.GenerateLocally(ex, displayNumber, attorneyName,
			p.cfg.Intake.ContactEmail, p.cfg.Firm, p.cfg.Statute.Years, p.cfg.Retainer.TemplatePath)
		if err != nil {
			zap.L().Warn("local retainer generation failed", zap.Error(err))
			return nil
		}
		return pdf
	}

	tmpl, err := p.client.FindTemplateByName(ctx, p.cfg.Retainer.TemplateName)
	if err != nil {
		step.Status = model.StepError
		step.Detail = err.Error()
		return nil
	}

	if tmpl == nil {
		if pdf := local(); pdf != nil {
			step.Status = model.StepSuccess
			step.Detail = fmt.Sprintf("Local PDF generated (%d bytes)", len(pdf))
			return pdf
		}
		step.Status = model.StepSkipped
		step.Detail = fmt.Sprintf("Retainer template %q not found and local generation failed", p.cfg.Retainer.TemplateName)
		return nil
	}

	doc, err := p.client.GenerateDocument(ctx, matterID, tmpl.ID, "Retainer Agreement - "+plaintiffName)
	if err != nil {
		step.Status = model.StepError
		step.Detail = err.Error()
		return nil
	}
	step.Detail = fmt.Sprintf("Document '%s' (id=%d)", doc.Name, doc.ID)

	var pollOpts []clio.PollOption
	if p.cfg.Clio.PollEverySecs > 0 {
		pollOpts = append(pollOpts, clio.WithPollInterval(time.Duration(p.cfg.Clio.PollEverySecs)*time.Second))
	}
	if p.cfg.Clio.PollWaitSecs > 0 {
		pollOpts = append(pollOpts, clio.WithPollMaxWait(time.Duration(p.cfg.Clio.PollWaitSecs)*time.Second))
	}
	ready, err := clio.PollDocumentVersion(ctx, p.client, doc.ID, pollOpts...)
	if err != nil {
		step.Status = model.StepError
		step.Detail = err.Error()
		return nil
	}

	if ready != nil {
		pdf, derr := p.client.DownloadDocument(ctx, doc.ID)
		if derr == nil {
			step.Status = model.StepSuccess
			step.Detail += fmt.Sprintf(", downloaded %d bytes", len(pdf))
			return pdf
		}
		zap.L().Warn("retainer download failed, falling back to local generation", zap.Error(derr))
	}

	if pdf := local(); pdf != nil {
		step.Status = model.StepSuccess
		step.Detail += fmt.Sprintf(", local PDF generated (%d bytes)", len(pdf))
		return pdf
	}

	step.Status = model.StepSuccess
	step.Detail += " (PDF generation failed - email will be sent without attachment)"
	return nil
}

// sendEmail composes and sends the plaintiff notification, skipping
// outright when outbound mail is unconfigured.
func (p *Pipeline) sendEmail(
	ctx context.Context,
	step *model.PipelineStep,
	ex *model.ExtractionResult,
	plaintiff *model.Party,
	plaintiffName string,
	retainerBytes []byte,
) {
	if !p.cfg.SMTP.Configured() {
		step.Status = model.StepSkipped
		step.Detail = "SMTP not configured"
		return
	}
	if p.cfg.Intake.NotifyEmail == "" {
		step.Status = model.StepSkipped
		step.Detail = "No notification recipient configured"
		return
	}

	firstName := ""
	if plaintiff != nil && plaintiff.FullName.Value != "" {
		firstName, _ = clio.SplitName(plaintiff.FullName.Value)
	}

	dateFormatted := "the date of your accident"
	bookingMonth := time.Now().Month()
	if accident, err := docgen.ParseISODate(ex.AccidentDate); err == nil {
		dateFormatted = docgen.FormatLongDate(accident)
		bookingMonth = accident.Month()
	}

	location := ex.AccidentLocation
	if location == "" {
		location = "the accident location"
	}

	brief := ex.AccidentDescription
	if i := strings.Index(brief, "."); i >= 0 {
		brief = brief[:i+1]
	}
	if brief == "" {
		brief = "Our records indicate you were involved in a motor vehicle accident."
	}

	bookingLink, bookingType := mailer.BookingLink(bookingMonth, p.cfg.Booking)

	data := model.EmailData{
		ToEmail:               p.cfg.Intake.NotifyEmail,
		ClientFirstName:       firstName,
		AccidentDateFormatted: dateFormatted,
		AccidentLocation:      location,
		AccidentDescription:   brief,
		BookingLink:           bookingLink,
		BookingType:           bookingType,
		AttachmentBytes:       retainerBytes,
		AttachmentName:        fmt.Sprintf("Retainer_Agreement_%s.pdf", strings.ReplaceAll(plaintiffName, " ", "_")),
	}

	if err := p.mailer.SendClientEmail(ctx, data); err != nil {
		step.Status = model.StepError
		step.Detail = err.Error()
		return
	}

	note := " (without attachment)"
	if len(retainerBytes) > 0 {
		note = " (with PDF)"
	}
	step.Status = model.StepSuccess
	step.Detail = "Email sent to " + data.ToEmail + note
}
