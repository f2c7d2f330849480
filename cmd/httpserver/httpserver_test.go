package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/go-petr/mini-bank/internal/middleware"
	"github.com/go-petr/mini-bank/internal/notifybus"
	"github.com/go-petr/mini-bank/pkg/configpkg"
	"github.com/go-petr/mini-bank/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type response struct {
	AccessToken string          `json:"access_token"`
	Data        json.RawMessage `json:"data"`
	Error       string          `json:"error"`
}

type client struct {
	t      *testing.T
	server *Server
	token  string
}

func (c *client) do(method, path string, body any) (int, response) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(c.t, err)

	if c.token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.AuthTypeBearer+" "+c.token)
	}

	recorder := httptest.NewRecorder()
	c.server.ServeHTTP(recorder, req)

	var res response
	require.NoError(c.t, json.NewDecoder(recorder.Body).Decode(&res))

	return recorder.Code, res
}

func (c *client) signUp(username string) {
	c.t.Helper()

	code, res := c.do(http.MethodPost, "/users", gin.H{
		"username": username,
		"password": "secret",
		"fullname": username,
	})
	require.Equal(c.t, http.StatusOK, code, res.Error)

	c.token = ""
	code, res = c.do(http.MethodPost, "/users/login", gin.H{"username": username, "password": "secret"})
	require.Equal(c.t, http.StatusOK, code, res.Error)
	require.NotEmpty(c.t, res.AccessToken)

	c.token = res.AccessToken
}

func (c *client) openAccount(kind, initialBalance string) domain.Account {
	c.t.Helper()

	code, res := c.do(http.MethodPost, "/accounts", gin.H{"kind": kind, "initial_balance": initialBalance})
	require.Equal(c.t, http.StatusOK, code, res.Error)

	var data struct {
		Account domain.Account `json:"account"`
	}
	require.NoError(c.t, json.Unmarshal(res.Data, &data))

	return data.Account
}

func (c *client) balance(id int64) decimal.Decimal {
	c.t.Helper()

	code, res := c.do(http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil)
	require.Equal(c.t, http.StatusOK, code, res.Error)

	var data struct {
		Account domain.Account `json:"account"`
	}
	require.NoError(c.t, json.Unmarshal(res.Data, &data))

	return data.Account.Balance
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := configpkg.Config{
		TokenType:           configpkg.TokenTypePaseto,
		TokenSymmetricKey:   randompkg.String(32),
		AccessTokenDuration: time.Minute,
	}

	server, err := New(zerolog.Nop(), config)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, server.Close())
	})

	return server
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, got.Equal(decimal.RequireFromString(want)), "got %s, want %s", got, want)
}

func TestBankScenario(t *testing.T) {
	server := newTestServer(t)
	require.Equal(t, 4, server.Bus.Len())

	alice := &client{t: t, server: server}
	alice.signUp("alice")
	bob := &client{t: t, server: server}
	bob.signUp("bob")

	aliceAcc := alice.openAccount("Savings", "100")
	bobAcc := bob.openAccount("checking", "50")
	require.Equal(t, domain.KindSavings, aliceAcc.Kind)
	require.Equal(t, domain.KindChecking, bobAcc.Kind)

	code, res := alice.do(http.MethodPost, fmt.Sprintf("/accounts/%d/deposits", aliceAcc.ID), gin.H{"amount": "50"})
	require.Equal(t, http.StatusOK, code, res.Error)

	code, res = bob.do(http.MethodPost, fmt.Sprintf("/accounts/%d/withdrawals", bobAcc.ID), gin.H{"amount": "30"})
	require.Equal(t, http.StatusOK, code, res.Error)

	code, res = alice.do(http.MethodPost, "/transfers", gin.H{
		"from_account_id": aliceAcc.ID,
		"to_account_id":   bobAcc.ID,
		"amount":          "30",
	})
	require.Equal(t, http.StatusOK, code, res.Error)

	var transfer struct {
		Transfer domain.TransferResult `json:"transfer"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &transfer))
	require.Equal(t, int64(3), transfer.Transfer.TxID)

	requireDecimal(t, "120", alice.balance(aliceAcc.ID))
	requireDecimal(t, "50", bob.balance(bobAcc.ID))

	code, res = alice.do(http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, code, res.Error)

	var analytics struct {
		Operations map[string]int64 `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &analytics))
	require.Equal(t, map[string]int64{
		notifybus.OpDeposit:  1,
		notifybus.OpWithdraw: 1,
		notifybus.OpTransfer: 1,
	}, analytics.Operations)
	require.Equal(t, 3, server.Email.Sent())

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `minibank_events_total{operation="transfer"} 1`)
	require.Contains(t, recorder.Body.String(), `minibank_http_requests_total{method="POST",route="/transfers",status="200"} 1`)
}

func TestFailuresAreRecordedButNotPublished(t *testing.T) {
	server := newTestServer(t)

	alice := &client{t: t, server: server}
	alice.signUp("alice")
	bob := &client{t: t, server: server}
	bob.signUp("bob")

	aliceAcc := alice.openAccount("business", "10")
	bobAcc := bob.openAccount("savings", "0")

	code, res := alice.do(http.MethodPost, fmt.Sprintf("/accounts/%d/withdrawals", aliceAcc.ID), gin.H{"amount": "25"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, domain.ErrInsufficientFunds.Error(), res.Error)

	code, res = alice.do(http.MethodPost, fmt.Sprintf("/accounts/%d/deposits", aliceAcc.ID), gin.H{"amount": "0"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, domain.ErrInvalidAmount.Error(), res.Error)

	code, res = bob.do(http.MethodPost, "/transfers", gin.H{
		"from_account_id": aliceAcc.ID,
		"to_account_id":   bobAcc.ID,
		"amount":          "5",
	})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, domain.ErrInvalidOwner.Error(), res.Error)

	code, res = alice.do(http.MethodPost, "/transfers", gin.H{
		"from_account_id": aliceAcc.ID,
		"to_account_id":   aliceAcc.ID,
		"amount":          "5",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, domain.ErrSameAccount.Error(), res.Error)

	code, res = alice.do(http.MethodGet, "/accounts/999", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, domain.ErrAccountNotFound.Error(), res.Error)

	code, res = alice.do(http.MethodGet, fmt.Sprintf("/accounts/%d/transactions", aliceAcc.ID), nil)
	require.Equal(t, http.StatusOK, code, res.Error)

	var history struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &history))
	require.Len(t, history.Transactions, 2)

	for _, tx := range history.Transactions {
		require.Equal(t, domain.TxFailed, tx.Status)
	}

	requireDecimal(t, "10", alice.balance(aliceAcc.ID))
	require.Empty(t, server.Analytics.Counts())
	require.Equal(t, 0, server.Email.Sent())
}
