// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis defines the chain spec, which configures the modules and
// seeds their genesis state.
package genesis

import (
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xode-network/xode-staking/codec"
	"github.com/xode-network/xode-staking/session"
	"github.com/xode-network/xode-staking/staking"
	"github.com/xode-network/xode-staking/xode"
)

// Spec is the chain spec.
type Spec struct {
	Name              string                `yaml:"name"`
	KeyLength         int                   `yaml:"keyLength"`
	Staking           StakingSpec           `yaml:"staking"`
	Aura              AuraSpec              `yaml:"aura"`
	CollatorSelection CollatorSelectionSpec `yaml:"collatorSelection"`
	Session           SessionSpec           `yaml:"session"`
	Balances          []Endowment           `yaml:"balances,omitempty"`
}

type StakingSpec struct {
	BlockInterval   uint32   `yaml:"blockInterval"`
	MaxCandidates   uint32   `yaml:"maxCandidates"`
	Invulnerables   []string `yaml:"invulnerables,omitempty"`
	StrictBootstrap bool     `yaml:"strictBootstrap,omitempty"`
}

type AuraSpec struct {
	MaxAuthorities uint32   `yaml:"maxAuthorities"`
	Authorities    []string `yaml:"authorities,omitempty"`
}

type CollatorSelectionSpec struct {
	MaxInvulnerables uint32   `yaml:"maxInvulnerables"`
	Invulnerables    []string `yaml:"invulnerables,omitempty"`
}

type SessionSpec struct {
	Period uint32 `yaml:"period"`
	Offset uint32 `yaml:"offset"`
}

// Endowment is a genesis balance. Amount is a decimal string.
type Endowment struct {
	Account string `yaml:"account"`
	Amount  string `yaml:"amount"`
}

// Load reads the spec from a yaml file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read chain spec")
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "chain spec %s", path)
	}
	return spec, nil
}

// Parse decodes and validates the spec. Absent fields take the dev defaults.
func Parse(data []byte) (*Spec, error) {
	spec := &Spec{
		KeyLength: xode.DefaultKeyLength,
		Staking: StakingSpec{
			BlockInterval: xode.DefaultBlockInterval,
			MaxCandidates: xode.DefaultMaxCandidates,
		},
		Aura:              AuraSpec{MaxAuthorities: xode.DefaultMaxAuthorities},
		CollatorSelection: CollatorSelectionSpec{MaxInvulnerables: xode.DefaultMaxInvulnerables},
		Session:           SessionSpec{Period: xode.DefaultSessionPeriod},
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, errors.Wrap(err, "decode chain spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Marshal encodes the spec in yaml.
func (s *Spec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// ID returns the digest identifying the chain.
func (s *Spec) ID() ([32]byte, error) {
	data, err := s.Marshal()
	if err != nil {
		return [32]byte{}, err
	}
	return xode.Blake2b(data), nil
}

// Validate checks the spec. Seeds beyond maxCandidates are allowed, bootstrap drops them.
func (s *Spec) Validate() error {
	if s.KeyLength <= 0 {
		return errors.New("keyLength must be positive")
	}
	stakingCfg := s.StakingConfig()
	if err := stakingCfg.Validate(); err != nil {
		return err
	}
	sessionCfg := s.SessionConfig()
	if err := sessionCfg.Validate(); err != nil {
		return err
	}
	if s.Aura.MaxAuthorities == 0 {
		return errors.New("aura: max authorities must be positive")
	}
	if s.CollatorSelection.MaxInvulnerables == 0 {
		return errors.New("collator selection: max invulnerables must be positive")
	}
	if _, err := s.Authorities(); err != nil {
		return err
	}
	if _, err := s.Invulnerables(); err != nil {
		return err
	}
	if _, err := s.Endowments(); err != nil {
		return err
	}
	return nil
}

// Codec returns the identifier codec of the chain.
func (s *Spec) Codec() *codec.Codec {
	return codec.New(s.KeyLength)
}

func (s *Spec) StakingConfig() staking.Config {
	return staking.Config{
		BlockInterval:   s.Staking.BlockInterval,
		MaxCandidates:   s.Staking.MaxCandidates,
		Invulnerables:   s.Staking.Invulnerables,
		StrictBootstrap: s.Staking.StrictBootstrap,
	}
}

func (s *Spec) SessionConfig() session.Config {
	return session.Config{Period: s.Session.Period, Offset: s.Session.Offset}
}

// Authorities decodes the genesis authorities.
func (s *Spec) Authorities() ([]xode.AuthorityID, error) {
	cdc := s.Codec()
	ids := make([]xode.AuthorityID, 0, len(s.Aura.Authorities))
	for _, str := range s.Aura.Authorities {
		id, err := cdc.DecodeAuthority(str)
		if err != nil {
			return nil, errors.WithMessage(err, "aura authority")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Invulnerables decodes the genesis invulnerable collators.
func (s *Spec) Invulnerables() ([]xode.AccountID, error) {
	accs := make([]xode.AccountID, 0, len(s.CollatorSelection.Invulnerables))
	for _, str := range s.CollatorSelection.Invulnerables {
		acc, err := xode.ParseAccountID(str)
		if err != nil {
			return nil, errors.WithMessagef(err, "collator selection invulnerable %q", str)
		}
		accs = append(accs, acc)
	}
	return accs, nil
}

// Balance is a decoded endowment.
type Balance struct {
	Account xode.AccountID
	Amount  *uint256.Int
}

// Endowments decodes the genesis balances.
func (s *Spec) Endowments() ([]Balance, error) {
	balances := make([]Balance, 0, len(s.Balances))
	for _, e := range s.Balances {
		acc, err := xode.ParseAccountID(e.Account)
		if err != nil {
			return nil, errors.WithMessagef(err, "endowment account %q", e.Account)
		}
		amount, err := uint256.FromDecimal(e.Amount)
		if err != nil {
			return nil, errors.WithMessagef(err, "endowment amount %q", e.Amount)
		}
		balances = append(balances, Balance{acc, amount})
	}
	return balances, nil
}
