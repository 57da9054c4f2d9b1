package address

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhystmorgan/regform/internal/models"
)

// InvalidPostcodeMessage is shown whenever a lookup fails, whatever the cause
const InvalidPostcodeMessage = "CEP inválido. Tente novamente!"

// DependentFields are filled by a successful lookup and cleared by a failed one
var DependentFields = []models.FieldName{
	models.FieldDistrict,
	models.FieldCity,
	models.FieldStreet,
	models.FieldComplement,
	models.FieldState,
}

// Request identifies one lookup started against a form
type Request struct {
	ID       string
	Seq      uint64
	Postcode string
}

// Result is the settled outcome of a Request. Exactly one of Address and
// Err is set.
type Result struct {
	Request Request
	Address *Address
	Err     error
}

func (r Result) Succeeded() bool {
	return r.Err == nil && r.Address != nil
}

// Lookup fills the address fields of a form from a postcode
type Lookup struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewLookup(fetcher Fetcher, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lookup{
		fetcher: fetcher,
		logger:  logger.Named("lookup"),
	}
}

// Begin clears the previous lookup error and re-enables submission. Every
// call supersedes the requests started before it. An empty postcode sends
// nothing and returns false.
func (l *Lookup) Begin(state *models.FormState, postcode string) (Request, bool) {
	state.LookupError = ""
	state.SubmitEnabled = true
	seq := state.NextLookupSeq()

	if postcode == "" {
		return Request{}, false
	}

	return Request{
		ID:       uuid.NewString(),
		Seq:      seq,
		Postcode: postcode,
	}, true
}

// Fetch performs the network part of a lookup. It does not touch the form
// and may run on any goroutine.
func (l *Lookup) Fetch(ctx context.Context, req Request) Result {
	addr, err := l.fetcher.Fetch(ctx, req.Postcode)
	if err == nil && addr == nil {
		err = NewNotFoundError(req.Postcode)
	}
	if err != nil {
		return Result{Request: req, Err: err}
	}
	return Result{Request: req, Address: addr}
}

// Apply writes a result into the form. Results of superseded requests are
// dropped and Apply returns false.
func (l *Lookup) Apply(state *models.FormState, res Result) bool {
	if res.Request.Seq != state.LookupSeq() {
		l.logger.Debug("dropping stale lookup result",
			zap.String("request_id", res.Request.ID),
			zap.Uint64("seq", res.Request.Seq),
			zap.Uint64("current", state.LookupSeq()))
		return false
	}

	if !res.Succeeded() {
		l.logger.Info("postcode lookup failed",
			zap.String("request_id", res.Request.ID),
			zap.Error(res.Err))

		state.LookupError = InvalidPostcodeMessage
		state.SubmitEnabled = false
		for _, name := range DependentFields {
			state.SetValue(name, "")
		}
		return true
	}

	addr := res.Address
	state.SetValue(models.FieldDistrict, addr.District)
	state.SetValue(models.FieldCity, addr.City)
	state.SetValue(models.FieldStreet, addr.Street)
	state.SetValue(models.FieldComplement, addr.Complement)
	state.SetValue(models.FieldState, addr.State)

	l.logger.Debug("postcode lookup applied", zap.String("request_id", res.Request.ID))
	return true
}

// Run performs a whole lookup synchronously
func (l *Lookup) Run(ctx context.Context, state *models.FormState, postcode string) Result {
	req, ok := l.Begin(state, postcode)
	if !ok {
		return Result{}
	}

	res := l.Fetch(ctx, req)
	l.Apply(state, res)
	return res
}
