// Package usecase implements the question to action to data flow of the assistant.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tickertalk/internal/feature/assistant/catalog"
	"tickertalk/internal/feature/assistant/domain/entity"
	mdentity "tickertalk/internal/feature/marketdata/domain/entity"
	mdusecase "tickertalk/internal/feature/marketdata/usecase"
	"tickertalk/internal/shared/figure"
)

const (
	// PromptMessage is shown when the model picked no known action.
	PromptMessage = "Please ask a question to proceed."
	// ProfileUnavailable is shown when the profile lookup returned no data.
	ProfileUnavailable = "Could not fetch the stock profile."
	// AnalystRegion is the region always used for analyst reports, whatever the chart selectors say.
	AnalystRegion = "US"
	// UnknownDecision is recorded in place of action names outside the catalog.
	UnknownDecision = "unknown"
)

// ErrBlankQuestion is returned for an empty or whitespace-only question. Callers ignore it silently.
var ErrBlankQuestion = errors.New("blank question")

// ClassifierError wraps a failure of the hosted model call.
type ClassifierError struct {
	Err error
}

func (e *ClassifierError) Error() string {
	return fmt.Sprintf("classifier: %v", e.Err)
}

func (e *ClassifierError) Unwrap() error {
	return e.Err
}

// Classifier picks at most one catalog action for a question.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Classifier interface {
	Classify(ctx context.Context, question string, actions []entity.ActionSpec) (entity.Decision, error)
}

// MarketGateway is the subset of market data operations the dispatcher invokes.
type MarketGateway interface {
	Quote(ctx context.Context, ticker string) (json.RawMessage, error)
	News(ctx context.Context, ticker string) ([]mdentity.NewsItem, error)
	Profile(ctx context.Context, ticker, module string) (json.RawMessage, error)
	Chart(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartData, error)
	Analyst(ctx context.Context, symbol, region string) ([]mdentity.AnalystReport, error)
}

// DecisionRecorder counts classifier decisions. May be nil.
type DecisionRecorder interface {
	RecordDecision(action string)
}

// AssistantUsecase runs one classifier call followed by at most one gateway call per question.
type AssistantUsecase struct {
	classifier Classifier
	gateway    MarketGateway
	recorder   DecisionRecorder
}

// NewAssistantUsecase creates a new AssistantUsecase.
func NewAssistantUsecase(classifier Classifier, gateway MarketGateway, recorder DecisionRecorder) *AssistantUsecase {
	return &AssistantUsecase{classifier: classifier, gateway: gateway, recorder: recorder}
}

// Ask classifies the question and dispatches the chosen action.
//
// A blank question returns ErrBlankQuestion without calling the classifier.
// Classifier failures return *ClassifierError and malformed arguments return *catalog.ArgumentError.
// Gateway failures are not errors: they are rendered into the reply.
func (u *AssistantUsecase) Ask(ctx context.Context, question string) (entity.Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return entity.Reply{}, ErrBlankQuestion
	}
	logger := zerolog.Ctx(ctx)

	specs, err := catalog.Specs()
	if err != nil {
		return entity.Reply{}, err
	}

	d, err := u.classifier.Classify(ctx, question, specs)
	if err != nil {
		logger.Error().Err(err).Msg("classifier call failed")
		return entity.Reply{}, &ClassifierError{Err: err}
	}
	known := catalog.Known(d.Action)
	if u.recorder != nil {
		// モデルが作った名前をそのままラベルにしない
		label := string(d.Action)
		if !known && d.Action != "" {
			label = UnknownDecision
		}
		u.recorder.RecordDecision(label)
	}
	logger.Info().Str("action", string(d.Action)).Str("catalog", catalog.Version).Msg("classifier decision")

	if !known {
		return entity.Reply{Message: PromptMessage}, nil
	}

	call, err := catalog.Parse(d)
	if err != nil {
		logger.Warn().Err(err).Str("action", string(d.Action)).Msg("rejected classifier arguments")
		return entity.Reply{}, err
	}
	return u.Dispatch(ctx, call), nil
}

// Dispatch invokes the gateway operation for a typed call and renders its result.
func (u *AssistantUsecase) Dispatch(ctx context.Context, call entity.Call) entity.Reply {
	switch c := call.(type) {
	case entity.NewsArgs:
		reply := entity.Reply{Action: c.Name(), Title: "Latest News"}
		items, err := u.gateway.News(ctx, c.StockName)
		return withResult(reply, items, err)

	case entity.QuoteArgs:
		reply := entity.Reply{Action: c.Name(), Title: "Stock Data"}
		body, err := u.gateway.Quote(ctx, c.StockName)
		return withResult(reply, body, err)

	case entity.ProfileArgs:
		reply := entity.Reply{Action: c.Name(), Title: "Stock Profile"}
		body, err := u.gateway.Profile(ctx, c.StockName, mdusecase.ProfileModule)
		if mdentity.IsNoData(err) {
			reply.Message = ProfileUnavailable
			return reply
		}
		return withResult(reply, body, err)

	case entity.ChartArgs:
		reply := entity.Reply{
			Action: c.Name(),
			Title: fmt.Sprintf("Stock chart for %s in the %s region with a range of %s and an interval of %s",
				c.StockName, c.Region, c.Range, c.Interval),
		}
		data, err := u.gateway.Chart(ctx, mdentity.ChartQuery{
			Symbol:   c.StockName,
			Region:   c.Region,
			Range:    c.Range,
			Interval: c.Interval,
		})
		if err != nil {
			reply.Error = err.Error()
			return reply
		}
		fig := figure.CloseChart(c.StockName, data.Series())
		reply.Chart = &fig
		return reply

	case entity.AnalystArgs:
		reply := entity.Reply{Action: c.Name(), Title: fmt.Sprintf("Analyst Recommendations for %s", c.Symbol)}
		reports, err := u.gateway.Analyst(ctx, c.Symbol, AnalystRegion)
		return withResult(reply, reports, err)

	default:
		return entity.Reply{Message: PromptMessage}
	}
}

func withResult(reply entity.Reply, data any, err error) entity.Reply {
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	reply.Data = data
	return reply
}
