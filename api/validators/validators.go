// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xode-network/xode-staking/api/utils"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/xode"
)

type Validators struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Validators {
	return &Validators{rt}
}

type Authorities struct {
	Authorities    []xode.AuthorityID `json:"authorities"`
	Accounts       []xode.AccountID   `json:"accounts"`
	MaxAuthorities uint32             `json:"maxAuthorities"`
}

type Collators struct {
	Collators    []xode.AccountID `json:"collators"`
	MaxCollators uint32           `json:"maxCollators"`
}

type Session struct {
	Index      uint32           `json:"index"`
	Validators []xode.AccountID `json:"validators"`
	Queued     []xode.AccountID `json:"queued"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (v *Validators) handleGetAuthorities(w http.ResponseWriter, req *http.Request) error {
	var res Authorities
	if err := v.rt.View(func(m *runtime.Modules) (err error) {
		if res.Authorities, err = m.Staking.RetrieveAuthorities(); err != nil {
			return
		}
		if res.Accounts, err = m.Staking.RetrieveValidators(); err != nil {
			return
		}
		res.MaxAuthorities = m.Staking.RetrieveMaxAuthorities()
		return
	}); err != nil {
		return err
	}
	res.Authorities = orEmpty(res.Authorities)
	res.Accounts = orEmpty(res.Accounts)
	return utils.WriteJSON(w, res)
}

func (v *Validators) handleGetCollators(w http.ResponseWriter, req *http.Request) error {
	var res Collators
	if err := v.rt.View(func(m *runtime.Modules) (err error) {
		res.Collators, err = m.Collators.Invulnerables()
		res.MaxCollators = m.Collators.MaxInvulnerables()
		return
	}); err != nil {
		return err
	}
	res.Collators = orEmpty(res.Collators)
	return utils.WriteJSON(w, res)
}

func (v *Validators) handleGetSession(w http.ResponseWriter, req *http.Request) error {
	var res Session
	if err := v.rt.View(func(m *runtime.Modules) (err error) {
		if res.Index, err = m.Session.CurrentIndex(); err != nil {
			return
		}
		if res.Validators, err = m.Session.Validators(); err != nil {
			return
		}
		res.Queued, err = m.Session.QueuedValidators()
		return
	}); err != nil {
		return err
	}
	res.Validators = orEmpty(res.Validators)
	res.Queued = orEmpty(res.Queued)
	return utils.WriteJSON(w, res)
}

func (v *Validators) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/authorities").
		Methods(http.MethodGet).
		Name("GET /validators/authorities").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetAuthorities))
	sub.Path("/collators").
		Methods(http.MethodGet).
		Name("GET /validators/collators").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetCollators))
	sub.Path("/session").
		Methods(http.MethodGet).
		Name("GET /validators/session").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetSession))
}
