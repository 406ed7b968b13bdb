package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"
)

func TestProvider(t *testing.T) {
	p := NewProvider()
	reg := prometheus.NewRegistry()
	require.NoError(t, p.Register(reg))
	require.Error(t, p.Register(reg), "collectors must not be registered twice")

	p.WebAPIRequest("getProduct", http.StatusOK, 10*time.Millisecond)
	p.WebAPIRequest("getProduct", http.StatusOK, 20*time.Millisecond)
	p.WebAPIRequest("getProduct", http.StatusNotFound, time.Millisecond)
	require.InDelta(t, 2, testutil.ToFloat64(p.webAPIRequests.WithLabelValues("getProduct", "200")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.webAPIRequests.WithLabelValues("getProduct", "404")), 0)

	p.ObserveTransaction("shipBox", nil, time.Second)
	p.ObserveTransaction("shipBox", ierrors.New("reverted"), time.Second)
	require.InDelta(t, 1, testutil.ToFloat64(p.ledgerTransactions.WithLabelValues("shipBox", "success")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.ledgerTransactions.WithLabelValues("shipBox", "failure")), 0)

	p.SealVerification(SealValid)
	p.Challenge(ChallengeIssued)
	p.Challenge(ChallengeIssued)
	require.InDelta(t, 1, testutil.ToFloat64(p.sealVerifications.WithLabelValues(SealValid)), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.challenges.WithLabelValues(ChallengeIssued)), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "trustchain_webapi_requests_total")
	require.Contains(t, names, "trustchain_ledger_transaction_duration_seconds")
	require.Contains(t, names, "trustchain_challenges_total")
}
