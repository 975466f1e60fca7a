// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xode-network/xode-staking/api/utils"
	"github.com/xode-network/xode-staking/node"
)

// StatusSource reports the node status.
type StatusSource interface {
	Status() node.Status
}

// Info is the static node information.
type Info struct {
	Name    string `json:"name"`
	Chain   string `json:"chain"`
	Version string `json:"version"`
}

type Node struct {
	src  StatusSource
	info Info
}

func New(src StatusSource, info Info) *Node {
	return &Node{
		src,
		info,
	}
}

func (n *Node) handleStatus(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, n.src.Status())
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, n.info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("GET /node/status").
		HandlerFunc(utils.WrapHandlerFunc(n.handleStatus))
	sub.Path("/info").
		Methods(http.MethodGet).
		Name("GET /node/info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
}
