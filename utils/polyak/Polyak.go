// Package polyak implements Polyak averaging of parameters, the soft
// target-network update used by DQN variants:
//
//	θ_target ← τ θ_source + (1 - τ) θ_target
//
// Both gonum matrices and Gorgonia tensors are supported. All updates
// are performed in place on the target.
package polyak

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// ErrShapeMismatch is returned when the target and source parameters
// do not have the same shape.
var ErrShapeMismatch = errors.New("polyak: shape mismatch")

// ErrInvalidTau is returned when τ is outside (0, 1].
var ErrInvalidTau = errors.New("polyak: tau must be in (0, 1]")

func checkTau(tau float64) error {
	if !(tau > 0 && tau <= 1) {
		return fmt.Errorf("%w \n\twant(0 < τ <= 1) \n\thave(%v)",
			ErrInvalidTau, tau)
	}
	return nil
}

// Dense performs a Polyak averaging step of target towards source.
// When τ = 1, target becomes a copy of source.
func Dense(target, source *mat.Dense, tau float64) error {
	if err := checkTau(tau); err != nil {
		return err
	}

	tr, tc := target.Dims()
	sr, sc := source.Dims()
	if tr != sr || tc != sc {
		return fmt.Errorf("%w \n\twant(%v × %v) \n\thave(%v × %v)",
			ErrShapeMismatch, tr, tc, sr, sc)
	}

	if tau == 1.0 {
		target.Copy(source)
		return nil
	}

	var sourceWeights mat.Dense
	sourceWeights.Scale(tau, source)

	target.Scale(1-tau, target)
	target.Add(target, &sourceWeights)
	return nil
}

// Tensor performs a Polyak averaging step of target towards source.
// Only float64 tensors are supported.
func Tensor(target, source *tensor.Dense, tau float64) error {
	if err := checkTau(tau); err != nil {
		return err
	}

	if !target.Shape().Eq(source.Shape()) {
		return fmt.Errorf("%w \n\twant(%v) \n\thave(%v)", ErrShapeMismatch,
			target.Shape(), source.Shape())
	}

	if target.Dtype() != tensor.Float64 || source.Dtype() != tensor.Float64 {
		return fmt.Errorf("tensor: unsupported dtypes (%v, %v)",
			target.Dtype(), source.Dtype())
	}

	if _, err := target.MulScalar(1-tau, true, tensor.UseUnsafe()); err != nil {
		return err
	}

	sourceWeights, err := source.MulScalar(tau, true)
	if err != nil {
		return err
	}

	if _, err := target.Add(sourceWeights, tensor.UseUnsafe()); err != nil {
		return err
	}
	return nil
}
