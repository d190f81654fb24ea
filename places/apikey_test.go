// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"testing"
)

func TestResolveAPIKeyPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Setenv(APIKeyEnvVar, "from-env")

	// explicit beats the environment
	key, err := ResolveAPIKey(ctx, "explicit")
	if err != nil {
		t.Fatalf("ResolveAPIKey: %s", err)
	}

	if key != "explicit" {
		t.Fatalf("key = %q, want explicit", key)
	}

	key, err = ResolveAPIKey(ctx, "")
	if err != nil {
		t.Fatalf("ResolveAPIKey: %s", err)
	}

	if key != "from-env" {
		t.Fatalf("key = %q, want from-env", key)
	}
}
