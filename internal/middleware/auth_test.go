package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/mini-bank/pkg/randompkg"
	"github.com/go-petr/mini-bank/pkg/tokenpkg"
	"github.com/go-petr/mini-bank/pkg/web"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tokenType := range []string{"paseto", "jwt"} {
		tokenMaker, err := tokenpkg.New(tokenType, randompkg.String(32))
		require.NoError(t, err)

		otherMaker, err := tokenpkg.New(tokenType, randompkg.String(32))
		require.NoError(t, err)

		testCases := []struct {
			name           string
			setupAuth      func(r *http.Request) error
			wantStatusCode int
			wantError      string
			wantUsername   string
		}{
			{
				name:           "NoAuthorization",
				setupAuth:      func(r *http.Request) error { return nil },
				wantStatusCode: http.StatusUnauthorized,
				wantError:      ErrAuthHeaderNotFound.Error(),
			},
			{
				name: "TokenWithoutType",
				setupAuth: func(r *http.Request) error {
					token, _, err := tokenMaker.CreateToken("alice", time.Minute)
					r.Header.Set(AuthHeaderKey, token)
					return err
				},
				wantStatusCode: http.StatusUnauthorized,
				wantError:      ErrBadAuthHeaderFormat.Error(),
			},
			{
				name: "BasicAuthorization",
				setupAuth: func(r *http.Request) error {
					return AddAuthorization(r, tokenMaker, "basic", "alice", time.Minute)
				},
				wantStatusCode: http.StatusUnauthorized,
				wantError:      ErrUnsupportedAuthType.Error(),
			},
			{
				name: "ExpiredToken",
				setupAuth: func(r *http.Request) error {
					return AddAuthorization(r, tokenMaker, AuthTypeBearer, "alice", -time.Minute)
				},
				wantStatusCode: http.StatusUnauthorized,
				wantError:      tokenpkg.ErrExpiredToken.Error(),
			},
			{
				name: "ForeignKey",
				setupAuth: func(r *http.Request) error {
					return AddAuthorization(r, otherMaker, AuthTypeBearer, "alice", time.Minute)
				},
				wantStatusCode: http.StatusUnauthorized,
				wantError:      tokenpkg.ErrInvalidToken.Error(),
			},
			{
				name: "CapitalizedBearer",
				setupAuth: func(r *http.Request) error {
					return AddAuthorization(r, tokenMaker, "Bearer", "bob", time.Minute)
				},
				wantStatusCode: http.StatusOK,
				wantUsername:   "bob",
			},
			{
				name: "OK",
				setupAuth: func(r *http.Request) error {
					return AddAuthorization(r, tokenMaker, AuthTypeBearer, "alice", time.Minute)
				},
				wantStatusCode: http.StatusOK,
				wantUsername:   "alice",
			},
		}

		for i := range testCases {
			tc := testCases[i]

			t.Run(tokenType+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				server := gin.New()
				server.GET("/me", AuthMiddleware(tokenMaker), func(gctx *gin.Context) {
					gctx.JSON(http.StatusOK, web.Response{Data: Username(gctx)})
				})

				request, err := http.NewRequest(http.MethodGet, "/me", nil)
				require.NoError(t, err)
				require.NoError(t, tc.setupAuth(request))

				recorder := httptest.NewRecorder()
				server.ServeHTTP(recorder, request)
				require.Equal(t, tc.wantStatusCode, recorder.Code)

				var got web.Response
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
				require.Equal(t, tc.wantError, got.Error)

				if tc.wantUsername != "" {
					require.Equal(t, tc.wantUsername, got.Data)
				}
			})
		}
	}
}
