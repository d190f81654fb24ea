// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// APIKeyEnvVar is the environment variable checked for the credential.
const APIKeyEnvVar = "PLACES_API_KEY"

// Display name of the key resource provisioned alongside the project.
const adcKeyDisplayName = "PlateMap Places Key"

// ResolveAPIKey finds the Places credential: an explicit value wins,
// then the environment, then a lookup of the project's named API key via
// Application Default Credentials. Returns ErrMissingAPIKey when all
// three come up empty.
func ResolveAPIKey(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if key := os.Getenv(APIKeyEnvVar); key != "" {
		return key, nil
	}

	log.Printf("%s is not set, attempting to retrieve the key via ADC", APIKeyEnvVar)

	key, err := apiKeyFromADC(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s unset and ADC lookup failed: %s", ErrMissingAPIKey, APIKeyEnvVar, err)
	}

	return key, nil
}

func apiKeyFromADC(ctx context.Context) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	if creds.ProjectID == "" {
		return "", errors.New("no project ID in default credentials")
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	it := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", creds.ProjectID),
	})

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != adcKeyDisplayName {
			continue
		}

		// ListKeys redacts KeyString; the secret needs a dedicated call.
		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.Name})
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", fmt.Errorf("key %q found but its secret is empty", adcKeyDisplayName)
		}

		return resp.KeyString, nil
	}

	return "", fmt.Errorf("no API key named %q in project %s", adcKeyDisplayName, creds.ProjectID)
}
