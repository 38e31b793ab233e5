package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterServiceMetrics_Idempotent(t *testing.T) {
	RegisterServiceMetrics()
	RegisterServiceMetrics()

	ChatTokensTotal.WithLabelValues("azure", "gpt-4o-mini", "total").Add(12)
	if v := testutil.ToFloat64(ChatTokensTotal.WithLabelValues("azure", "gpt-4o-mini", "total")); v < 12 {
		t.Errorf("chat_tokens_total = %f, want >= 12", v)
	}

	ContextChars.Observe(640)
	if n := testutil.CollectAndCount(ContextChars); n != 1 {
		t.Errorf("context_chars collected %d series, want 1", n)
	}
}
