package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/kardolus/onchain-agent/api"
)

const (
	expectedToken = "valid-api-key"
	explorerKey   = "explorer-key"
	completions   = "/v1/chat/completions"
	explorerPath  = "/api"

	agentWallet  = "0x0D476789a3B7C3D19cA3E02394a934bb84fC31D3"
	usdcContract = "0x036CbD53842c5426634e7929541eC2318f3dCF7e"

	finalAnswer = "Wallet Details:\n- Address: " + agentWallet + "\n- Network ID: base-sepolia\n- ETH Balance: 1\n\n" +
		"You hold 100 USDC. Risk: 1/5."
)

// mockBackend plays both the completions API and a Basescan account API.
// The model asks for the ERC20 balances first and answers once it has seen
// the tool observation.
type mockBackend struct {
	mu           sync.Mutex
	observations []string
	explorerHits int
}

func newMockBackend() (*mockBackend, *httptest.Server) {
	b := &mockBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc(completions, b.completions)
	mux.HandleFunc(explorerPath, b.explorer)

	return b, httptest.NewServer(mux)
}

func (b *mockBackend) completions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+expectedToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
		return
	}

	var req api.CompletionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	last := req.Messages[len(req.Messages)-1]

	var reply api.Message
	if last.Role == api.ToolRole {
		b.mu.Lock()
		b.observations = append(b.observations, last.Content)
		b.mu.Unlock()

		reply = api.Message{Role: api.AssistantRole, Content: finalAnswer}
	} else {
		reply = api.Message{
			Role: api.AssistantRole,
			ToolCalls: []api.ToolCall{{
				ID:   "call_1",
				Type: api.FunctionType,
				Function: api.FunctionCall{
					Name:      "get_erc20_balances",
					Arguments: `{"address":"` + agentWallet + `"}`,
				},
			}},
		}
	}

	writeJSON(w, api.CompletionsResponse{
		ID:      "chatcmpl-1",
		Model:   req.Model,
		Usage:   api.Usage{TotalTokens: 10},
		Choices: []api.Choice{{Message: reply, FinishReason: "stop"}},
	})
}

func (b *mockBackend) explorer(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.explorerHits++
	b.mu.Unlock()

	q := r.URL.Query()
	if q.Get("apikey") != explorerKey {
		writeJSON(w, map[string]string{"status": "0", "message": "NOTOK", "result": "Missing/Invalid API Key"})
		return
	}

	switch q.Get("action") {
	case "tokenbalance":
		result := "0"
		if strings.EqualFold(q.Get("contractaddress"), usdcContract) {
			result = "100000000"
		}
		writeJSON(w, map[string]string{"status": "1", "message": "OK", "result": result})
	default:
		writeJSON(w, map[string]string{"status": "0", "message": "No transactions found", "result": "[]"})
	}
}

func (b *mockBackend) seen() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.observations...)
}

func (b *mockBackend) hits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.explorerHits
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
