// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/api/utils"
	"github.com/xode-network/xode-staking/balances"
	"github.com/xode-network/xode-staking/runtime"
	"github.com/xode-network/xode-staking/txpool"
	"github.com/xode-network/xode-staking/xode"
)

type Staking struct {
	rt   *runtime.Runtime
	pool *txpool.TxPool
}

func New(rt *runtime.Runtime, pool *txpool.TxPool) *Staking {
	return &Staking{
		rt,
		pool,
	}
}

type Candidates struct {
	Candidates    []xode.AuthorityID `json:"candidates"`
	MaxCandidates uint32             `json:"maxCandidates"`
}

type Scheduler struct {
	BestBlock       uint32  `json:"bestBlock"`
	NextBlockNumber *uint32 `json:"nextBlockNumber"`
	BlockInterval   uint32  `json:"blockInterval"`
}

type Treasury struct {
	Treasury xode.AccountID       `json:"treasury"`
	Data     balances.AccountData `json:"data"`
}

func (s *Staking) handleGetCandidates(w http.ResponseWriter, req *http.Request) error {
	var res Candidates
	if err := s.rt.View(func(m *runtime.Modules) (err error) {
		res.Candidates, err = m.Staking.Candidates()
		res.MaxCandidates = m.Staking.MaxCandidates()
		return
	}); err != nil {
		return err
	}
	if res.Candidates == nil {
		res.Candidates = []xode.AuthorityID{}
	}
	return utils.WriteJSON(w, res)
}

func (s *Staking) handleGetScheduler(w http.ResponseWriter, req *http.Request) error {
	res := Scheduler{BlockInterval: s.rt.Spec().Staking.BlockInterval}
	if err := s.rt.View(func(m *runtime.Modules) error {
		next, ok, err := m.Staking.NextBlockNumber()
		if err != nil {
			return err
		}
		if ok {
			res.NextBlockNumber = &next
		}
		return nil
	}); err != nil {
		return err
	}
	res.BestBlock = s.rt.Best().Number
	return utils.WriteJSON(w, res)
}

func (s *Staking) handleGetTreasury(w http.ResponseWriter, req *http.Request) error {
	var res Treasury
	if err := s.rt.View(func(m *runtime.Modules) (err error) {
		res.Treasury, res.Data, err = m.Staking.RetrieveTreasuryAccount()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (s *Staking) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, s.pool.Dump())
}

// submit dry runs the extrinsic on the best state, then pools it.
func (s *Staking) submit(xt runtime.Extrinsic) (*SubmitResult, error) {
	events, err := s.rt.DryRun(xt)
	if err != nil {
		return nil, rejection(err)
	}
	entry, err := s.pool.Add(xt)
	if err != nil {
		return nil, rejection(err)
	}
	if events == nil {
		events = []runtime.RecordedEvent{}
	}
	return &SubmitResult{ID: entry.ID, Events: events}, nil
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Signer    xode.AccountID `json:"signer"`
		Authority string         `json:"authority"`
	}
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	id, err := s.rt.Codec().DecodeAuthority(body.Authority)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "authority"))
	}
	res, err := s.submit(runtime.Extrinsic{
		Origin: xode.Signed(body.Signer),
		Call:   runtime.Stake{Authority: id},
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	id, err := s.rt.Codec().DecodeAuthority(mux.Vars(req)["authority"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "authority"))
	}
	signer, err := xode.ParseAccountID(req.URL.Query().Get("signer"))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "signer"))
	}
	res, err := s.submit(runtime.Extrinsic{
		Origin: xode.Signed(signer),
		Call:   runtime.Unstake{Authority: id},
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (s *Staking) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	var body ExtrinsicRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	call, err := decodeCall(s.rt.Codec(), body.Call, body.Args)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "call"))
	}
	res, err := s.submit(runtime.Extrinsic{
		Origin: xode.Signed(body.Signer),
		Call:   call,
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/candidates").
		Methods(http.MethodGet).
		Name("GET /staking/candidates").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetCandidates))
	sub.Path("/candidates").
		Methods(http.MethodPost).
		Name("POST /staking/candidates").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/candidates/{authority}").
		Methods(http.MethodDelete).
		Name("DELETE /staking/candidates/{authority}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/scheduler").
		Methods(http.MethodGet).
		Name("GET /staking/scheduler").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetScheduler))
	sub.Path("/treasury").
		Methods(http.MethodGet).
		Name("GET /staking/treasury").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTreasury))
	sub.Path("/extrinsics").
		Methods(http.MethodGet).
		Name("GET /staking/extrinsics").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPending))
	sub.Path("/extrinsics").
		Methods(http.MethodPost).
		Name("POST /staking/extrinsics").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubmit))
}
