// Credential management API for protected test origins.

package main

import (
	"os"
	"path/filepath"
)

func (a *App) ListCredentialOrigins() ([]string, error) {
	vault, err := a.getCredentialVault()
	if err != nil {
		return nil, err
	}
	return vault.ListOrigins()
}

func (a *App) SaveCredential(origin, username, password string) error {
	vault, err := a.getCredentialVault()
	if err != nil {
		return err
	}
	return vault.Store(origin, Credential{Username: username, Password: password})
}

func (a *App) GetCredential(origin string) (Credential, error) {
	vault, err := a.getCredentialVault()
	if err != nil {
		return Credential{}, err
	}
	return vault.Get(origin)
}

func (a *App) DeleteCredential(origin string) error {
	vault, err := a.getCredentialVault()
	if err != nil {
		return err
	}
	return vault.Remove(origin)
}

func (a *App) ResetCredentialVault() error {
	vault, err := a.getCredentialVault()
	if err != nil {
		return err
	}
	return vault.Reset()
}

func (a *App) getCredentialVault() (*CredentialVault, error) {
	a.vaultOnce.Do(func() {
		configDir, err := os.UserConfigDir()
		if err != nil || configDir == "" {
			configDir = os.TempDir()
		}
		appDir := filepath.Join(configDir, "walnut", "credentials")
		vault, err := NewCredentialVault(appDir)
		if err != nil {
			a.vaultErr = err
			return
		}
		a.vault = vault
	})
	return a.vault, a.vaultErr
}
