package exported

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/uniongov/union-core/utils"
	groupexported "github.com/uniongov/union-core/x/group/exported"
)

// Target is what a threshold is measured against: a single group or profile, or a list of nested thresholds.
// Exactly one variant is set.
type Target struct {
	GroupOrProfile *groupexported.GroupOrProfile `json:"group_or_profile,omitempty"`
	Thresholds     []Value                       `json:"thresholds,omitempty"`
}

// QuantityOf is reached when the voted amount is at least Quantity
type QuantityOf struct {
	Quantity sdkmath.Uint `json:"quantity"`
	Target   Target       `json:"target"`
}

// FractionOf is reached when the voted amount is at least Fraction of the total
type FractionOf struct {
	Fraction sdkmath.LegacyDec `json:"fraction"`
	Target   Target            `json:"target"`
}

// Value is a recursive threshold. Exactly one variant is set.
type Value struct {
	QuantityOf *QuantityOf `json:"quantity_of,omitempty"`
	FractionOf *FractionOf `json:"fraction_of,omitempty"`
}

// Group returns a target measuring the given group
func Group(id groupexported.GroupID) Target {
	gop := groupexported.Group(id)
	return Target{GroupOrProfile: &gop}
}

// GroupOrProfile returns a target measuring the given group or profile
func GroupOrProfile(gop groupexported.GroupOrProfile) Target {
	return Target{GroupOrProfile: &gop}
}

// Thresholds returns a target counting how many of the given thresholds are reached
func Thresholds(values ...Value) Target {
	return Target{Thresholds: values}
}

// NewQuantityOf returns a quantity threshold
func NewQuantityOf(quantity sdkmath.Uint, target Target) Value {
	return Value{QuantityOf: &QuantityOf{Quantity: quantity, Target: target}}
}

// NewFractionOf returns a fraction threshold
func NewFractionOf(fraction sdkmath.LegacyDec, target Target) Value {
	return Value{FractionOf: &FractionOf{Fraction: fraction, Target: target}}
}

// IsReached evaluates the threshold against total and voted amounts per group or profile. Missing entries count as zero.
// A composite target counts the reached sub-thresholds against their number.
func (v Value) IsReached(total, voted map[groupexported.GroupOrProfile]sdkmath.Uint) bool {
	switch {
	case v.QuantityOf != nil:
		votedAmount, _ := v.QuantityOf.Target.resolve(total, voted)
		return votedAmount.GTE(v.QuantityOf.Quantity)
	case v.FractionOf != nil:
		votedAmount, totalAmount := v.FractionOf.Target.resolve(total, voted)
		if totalAmount.IsZero() {
			return v.FractionOf.Fraction.IsZero()
		}

		return utils.UintToDec(votedAmount).GTE(v.FractionOf.Fraction.MulInt(sdkmath.NewIntFromBigInt(totalAmount.BigInt())))
	default:
		panic("threshold value must set exactly one variant")
	}
}

// ListGroupsAndProfiles returns every group and profile the threshold refers to, without duplicates, in order of appearance
func (v Value) ListGroupsAndProfiles() []groupexported.GroupOrProfile {
	seen := make(map[groupexported.GroupOrProfile]bool)
	var list []groupexported.GroupOrProfile

	var walk func(Value)
	walk = func(v Value) {
		target := v.target()
		if target.GroupOrProfile != nil {
			if !seen[*target.GroupOrProfile] {
				seen[*target.GroupOrProfile] = true
				list = append(list, *target.GroupOrProfile)
			}

			return
		}

		for _, sub := range target.Thresholds {
			walk(sub)
		}
	}
	walk(v)

	return list
}

// ValidateBasic returns an error if the threshold tree is malformed
func (v Value) ValidateBasic() error {
	switch {
	case v.QuantityOf != nil && v.FractionOf != nil:
		return fmt.Errorf("threshold must not set both quantity and fraction")
	case v.QuantityOf != nil:
		if v.QuantityOf.Quantity.IsNil() {
			return fmt.Errorf("quantity must be set")
		}
	case v.FractionOf != nil:
		if err := utils.ValidateFraction(v.FractionOf.Fraction); err != nil {
			return err
		}
	default:
		return fmt.Errorf("threshold must set either quantity or fraction")
	}

	return v.target().validateBasic()
}

// String returns a human readable representation of the threshold
func (v Value) String() string {
	switch {
	case v.QuantityOf != nil:
		return fmt.Sprintf("quantity_of(%s, %s)", v.QuantityOf.Quantity, v.QuantityOf.Target)
	case v.FractionOf != nil:
		return fmt.Sprintf("fraction_of(%s, %s)", v.FractionOf.Fraction, v.FractionOf.Target)
	default:
		return "invalid"
	}
}

// String returns a human readable representation of the target
func (t Target) String() string {
	if t.GroupOrProfile != nil {
		return t.GroupOrProfile.String()
	}

	return fmt.Sprintf("%v", t.Thresholds)
}

func (v Value) target() Target {
	if v.QuantityOf != nil {
		return v.QuantityOf.Target
	}

	return v.FractionOf.Target
}

func (t Target) resolve(total, voted map[groupexported.GroupOrProfile]sdkmath.Uint) (votedAmount sdkmath.Uint, totalAmount sdkmath.Uint) {
	if t.GroupOrProfile != nil {
		return utils.GetOrZero(voted, *t.GroupOrProfile), utils.GetOrZero(total, *t.GroupOrProfile)
	}

	reached := uint64(0)
	for _, sub := range t.Thresholds {
		if sub.IsReached(total, voted) {
			reached++
		}
	}

	return sdkmath.NewUint(reached), sdkmath.NewUint(uint64(len(t.Thresholds)))
}

func (t Target) validateBasic() error {
	switch {
	case t.GroupOrProfile != nil && len(t.Thresholds) > 0:
		return fmt.Errorf("target must not set both a group or profile and thresholds")
	case t.GroupOrProfile != nil:
		return t.GroupOrProfile.ValidateBasic()
	case len(t.Thresholds) > 0:
		for _, sub := range t.Thresholds {
			if err := sub.ValidateBasic(); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("target must set a group or profile or a non-empty list of thresholds")
	}
}
