package trainer

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/neuraldiff-ml/neuraldiff/internal/autodiff"
	"github.com/neuraldiff-ml/neuraldiff/internal/tensor"
	"github.com/neuraldiff-ml/neuraldiff/optim"
	"github.com/neuraldiff-ml/neuraldiff/problem/condition"
)

// Model is a trainable condition model.
type Model interface {
	condition.Model
	Parameters() []*tensor.Tensor
	BindVariables(order []string)
}

// Config configures a Trainer. All fields are required except
// LogEvery, which defaults to 100 (0 disables logging entirely is
// expressed as a negative value).
type Config struct {
	Problem   *Problem
	Model     Model
	Optimizer optim.Optimizer
	Backend   autodiff.BackwardCapable

	// LogEvery logs the total loss every n epochs. Negative disables.
	LogEvery int
}

// Trainer runs the optimization loop: sample every condition, sum the
// weighted losses, backpropagate and step.
type Trainer struct {
	id  string
	cfg Config
}

// New creates a trainer with a fresh run ID and binds the model to the
// problem's variable order.
func New(cfg Config) (*Trainer, error) {
	if cfg.Problem == nil || cfg.Model == nil || cfg.Optimizer == nil || cfg.Backend == nil {
		return nil, fmt.Errorf("trainer: problem, model, optimizer and backend are all required")
	}
	if len(cfg.Problem.Conditions()) == 0 {
		return nil, fmt.Errorf("trainer: problem has no conditions")
	}
	if cfg.LogEvery == 0 {
		cfg.LogEvery = 100
	}
	cfg.Model.BindVariables(cfg.Problem.Variables.Names())
	return &Trainer{id: uuid.NewString(), cfg: cfg}, nil
}

// RunID identifies this training run.
func (t *Trainer) RunID() string { return t.id }

// Train runs the loop for the given number of epochs and returns the
// final total loss. Condition data is sampled concurrently; conditions
// must not share a *rand.Rand.
func (t *Trainer) Train(ctx context.Context, epochs int) (float64, error) {
	conds := t.cfg.Problem.Conditions()
	tape := t.cfg.Backend.GetTape()

	var last float64
	for epoch := 0; epoch < epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		datas := make([]*condition.Data, len(conds))
		g, _ := errgroup.WithContext(ctx)
		for i, c := range conds {
			i, c := i, c
			g.Go(func() error {
				d, err := c.GetData()
				if err != nil {
					return fmt.Errorf("condition %q: %w", c.Name(), err)
				}
				datas[i] = d
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return last, err
		}

		tape.Clear()
		tape.StartRecording()

		var total *tensor.Tensor
		for i, c := range conds {
			loss, err := c.Forward(t.cfg.Model, datas[i])
			if err != nil {
				return last, fmt.Errorf("condition %q: %w", c.Name(), err)
			}
			if total == nil {
				total = loss
			} else {
				total = total.Add(loss)
			}
		}

		// drop any gradients accumulated by conditions that ran an
		// inner backward pass, then backpropagate the summed loss
		t.cfg.Optimizer.ZeroGrad()
		grads := autodiff.Backward(total, t.cfg.Backend)
		t.cfg.Optimizer.Step(grads)

		tape.StopRecording()
		tape.Clear()

		last = total.Item()
		if t.cfg.LogEvery > 0 && (epoch%t.cfg.LogEvery == 0 || epoch == epochs-1) {
			log.Printf("run %s epoch %d/%d loss %.6g", t.id, epoch, epochs, last)
		}
	}
	return last, nil
}

// Describe reports the training setup.
func (t *Trainer) Describe() condition.Record {
	conds := t.cfg.Problem.Conditions()
	serialized := make([]condition.Record, len(conds))
	for i, c := range conds {
		serialized[i] = c.Serialize()
	}
	return condition.Record{
		"run_id":        t.id,
		"variables":     t.cfg.Problem.Variables.Names(),
		"conditions":    serialized,
		"learning_rate": t.cfg.Optimizer.LR(),
	}
}
