package notifications

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendWebhookSignsPayload(t *testing.T) {
	const secret = "test-secret"
	var gotSignature string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	payload := map[string]string{"event": "transaction.completed"}
	if err := SendWebhook(srv.URL, payload, secret); err != nil {
		t.Fatalf("send webhook: %v", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	want := hex.EncodeToString(mac.Sum(nil))
	if gotSignature != want {
		t.Errorf("signature = %s, want %s", gotSignature, want)
	}
}

func TestSendWebhookSubscriberError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := SendWebhook(srv.URL, map[string]string{"event": "x"}, "s"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
