package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
	"github.com/uniongov/union-core/x/token/exported"
)

// Token is the share ledger backing a group or a (choice, group) pair.
// The sum of balances always equals the total supply, for both the accepted and the unaccepted ledger.
type Token struct {
	ID                    exported.TokenID                 `json:"id"`
	Acceptable            bool                             `json:"acceptable"`
	Transferable          bool                             `json:"transferable"`
	TotalSupply           sdkmath.Uint                     `json:"total_supply"`
	Balances              map[union.Principal]sdkmath.Uint `json:"balances"`
	UnacceptedTotalSupply sdkmath.Uint                     `json:"unaccepted_total_supply"`
	UnacceptedBalances    map[union.Principal]sdkmath.Uint `json:"unaccepted_balances"`
}

// NewToken returns an empty token
func NewToken(id exported.TokenID, acceptable bool, transferable bool) Token {
	return Token{
		ID:                    id,
		Acceptable:            acceptable,
		Transferable:          transferable,
		TotalSupply:           sdkmath.ZeroUint(),
		Balances:              make(map[union.Principal]sdkmath.Uint),
		UnacceptedTotalSupply: sdkmath.ZeroUint(),
		UnacceptedBalances:    make(map[union.Principal]sdkmath.Uint),
	}
}

// BalanceOf returns the accepted balance of the given principal
func (m Token) BalanceOf(owner union.Principal) sdkmath.Uint {
	return utils.GetOrZero(m.Balances, owner)
}

// UnacceptedBalanceOf returns the unaccepted balance of the given principal
func (m Token) UnacceptedBalanceOf(owner union.Principal) sdkmath.Uint {
	return utils.GetOrZero(m.UnacceptedBalances, owner)
}

// Mint adds qty to the balance of the given principal and returns the new balance
func (m *Token) Mint(to union.Principal, qty sdkmath.Uint) sdkmath.Uint {
	m.ensureMaps()

	balance := m.BalanceOf(to).Add(qty)
	setBalance(m.Balances, to, balance)
	m.TotalSupply = m.TotalSupply.Add(qty)

	return balance
}

// Burn subtracts qty from the balance of the given principal and returns the new balance.
// The token stays unchanged if the balance is too low.
func (m *Token) Burn(from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	m.ensureMaps()

	balance := m.BalanceOf(from)
	if balance.LT(qty) {
		return balance, errorsmod.Wrapf(ErrInsufficientBalance, "balance of %s is %s, cannot burn %s", from, balance, qty)
	}

	balance = balance.Sub(qty)
	setBalance(m.Balances, from, balance)
	m.TotalSupply = m.TotalSupply.Sub(qty)

	return balance, nil
}

// MintUnaccepted adds qty to the unaccepted balance of the given principal. Panics if the token is not acceptable.
func (m *Token) MintUnaccepted(to union.Principal, qty sdkmath.Uint) sdkmath.Uint {
	m.mustBeAcceptable()
	m.ensureMaps()

	balance := m.UnacceptedBalanceOf(to).Add(qty)
	setBalance(m.UnacceptedBalances, to, balance)
	m.UnacceptedTotalSupply = m.UnacceptedTotalSupply.Add(qty)

	return balance
}

// BurnUnaccepted subtracts qty from the unaccepted balance of the given principal. Panics if the token is not acceptable.
func (m *Token) BurnUnaccepted(from union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	m.mustBeAcceptable()
	m.ensureMaps()

	balance := m.UnacceptedBalanceOf(from)
	if balance.LT(qty) {
		return balance, errorsmod.Wrapf(ErrInsufficientUnacceptedBalance, "unaccepted balance of %s is %s, cannot burn %s", from, balance, qty)
	}

	balance = balance.Sub(qty)
	setBalance(m.UnacceptedBalances, from, balance)
	m.UnacceptedTotalSupply = m.UnacceptedTotalSupply.Sub(qty)

	return balance, nil
}

// Transfer moves qty from one principal to another. Either both sides are updated or none.
func (m *Token) Transfer(from, to union.Principal, qty sdkmath.Uint) error {
	if !m.Transferable {
		return errorsmod.Wrapf(ErrNotTransferable, "token %s", m.ID)
	}

	if _, err := m.Burn(from, qty); err != nil {
		return err
	}

	m.Mint(to, qty)

	return nil
}

// Accept moves qty from the unaccepted to the accepted balance of the given principal
func (m *Token) Accept(of union.Principal, qty sdkmath.Uint) (sdkmath.Uint, error) {
	if _, err := m.BurnUnaccepted(of, qty); err != nil {
		return sdkmath.ZeroUint(), err
	}

	return m.Mint(of, qty), nil
}

// MakeAcceptable turns the accepted ledger into the unaccepted one, so holders have to accept their shares again.
// Panics if the token is already acceptable.
func (m *Token) MakeAcceptable() {
	if m.Acceptable {
		panic(fmt.Errorf("token %s is already acceptable", m.ID))
	}
	m.ensureMaps()

	m.Balances, m.UnacceptedBalances = m.UnacceptedBalances, m.Balances
	m.TotalSupply, m.UnacceptedTotalSupply = m.UnacceptedTotalSupply, m.TotalSupply
	m.Acceptable = true
}

// MakeNotAcceptable returns all unaccepted shares to the accepted ledger of their holders.
// Panics if the token is not acceptable.
func (m *Token) MakeNotAcceptable() {
	m.mustBeAcceptable()
	m.ensureMaps()

	for owner, qty := range m.UnacceptedBalances {
		m.Mint(owner, qty)
	}

	m.UnacceptedBalances = make(map[union.Principal]sdkmath.Uint)
	m.UnacceptedTotalSupply = sdkmath.ZeroUint()
	m.Acceptable = false
}

// ValidateBasic checks the ledger invariants
func (m Token) ValidateBasic() error {
	if !utils.SumShares(m.Balances).Equal(m.TotalSupply) {
		return fmt.Errorf("sum of balances does not match total supply %s", m.TotalSupply)
	}

	if !utils.SumShares(m.UnacceptedBalances).Equal(m.UnacceptedTotalSupply) {
		return fmt.Errorf("sum of unaccepted balances does not match unaccepted total supply %s", m.UnacceptedTotalSupply)
	}

	if !m.Acceptable && len(m.UnacceptedBalances) > 0 {
		return fmt.Errorf("token is not acceptable but has unaccepted balances")
	}

	return nil
}

func (m Token) mustBeAcceptable() {
	if !m.Acceptable {
		panic(fmt.Errorf("token %s is not acceptable", m.ID))
	}
}

func (m *Token) ensureMaps() {
	if m.Balances == nil {
		m.Balances = make(map[union.Principal]sdkmath.Uint)
	}

	if m.UnacceptedBalances == nil {
		m.UnacceptedBalances = make(map[union.Principal]sdkmath.Uint)
	}
}

func setBalance(balances map[union.Principal]sdkmath.Uint, owner union.Principal, balance sdkmath.Uint) {
	if balance.IsZero() {
		delete(balances, owner)
		return
	}

	balances[owner] = balance
}
