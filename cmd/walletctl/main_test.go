package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const testEvmAddress = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestWalletctl(t *testing.T) {
	t.Run("chain list", testChainList())
	t.Run("account", testAccountCommands())
	t.Run("account keys", testAccountKeyCommands())
	t.Run("syncsource", testSyncSourceCommands())
	t.Run("invalid db type", testInvalidDbType())
}

func testChainList() func(t *testing.T) {
	return func(t *testing.T) {
		out := runCommand(t, t.TempDir(), "chain", "list")

		var chains []chainInfo
		require.NoError(t, json.Unmarshal(out, &chains))
		require.NotEmpty(t, chains)
		require.Equal(t, "bitcoin", chains[0].UID)
		require.Equal(t, "ethereum", chains[1].UID)
		require.True(t, chains[1].Evm)
	}
}

func testAccountCommands() func(t *testing.T) {
	return func(t *testing.T) {
		datadir := t.TempDir()

		out := runCommand(
			t, datadir, "account", "add-watch", "--address", testEvmAddress,
		)
		var watch accountInfo
		require.NoError(t, json.Unmarshal(out, &watch))
		require.True(t, watch.Watch)
		require.Equal(t, "evm_address", watch.Type)
		require.Equal(t, testEvmAddress, watch.EvmAddress)
		require.Contains(t, watch.Chains, "ethereum")

		out = runCommand(
			t, datadir, "account", "add-cex",
			"--exchange", "binance", "--key", "key", "--secret", "secret",
		)
		var cex accountInfo
		require.NoError(t, json.Unmarshal(out, &cex))
		require.Equal(t, "Binance", cex.Name)
		require.Empty(t, cex.Chains)

		out = runCommand(t, datadir, "account", "list")
		var accounts []accountInfo
		require.NoError(t, json.Unmarshal(out, &accounts))
		require.Len(t, accounts, 2)

		runCommand(t, datadir, "account", "remove", "--id", watch.ID)

		out = runCommand(t, datadir, "account", "list")
		require.NoError(t, json.Unmarshal(out, &accounts))
		require.Len(t, accounts, 1)
		require.Equal(t, cex.ID, accounts[0].ID)

		out = runCommand(t, datadir, "--level", "1", "account", "list")
		require.NoError(t, json.Unmarshal(out, &accounts))
		require.Empty(t, accounts)
	}
}

func testAccountKeyCommands() func(t *testing.T) {
	return func(t *testing.T) {
		datadir := t.TempDir()
		words := "abandon abandon abandon abandon abandon abandon " +
			"abandon abandon abandon abandon abandon about"

		out := runCommand(t, datadir, "account", "add-mnemonic", "--words", words)
		var mnemonic accountInfo
		require.NoError(t, json.Unmarshal(out, &mnemonic))
		require.Equal(t, "mnemonic", mnemonic.Type)
		require.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", mnemonic.EvmAddress)

		out = runCommand(
			t, datadir, "account", "address",
			"--id", mnemonic.ID, "--path", "m/44'/60'/0'/0/1",
		)
		var address map[string]string
		require.NoError(t, json.Unmarshal(out, &address))
		require.Equal(t, "m/44'/60'/0'/0/1", address["path"])
		require.True(t, strings.EqualFold(
			"0x6fac4d18c912343bf86fa7049364dd4e424ab9c0", address["address"],
		))

		out = runCommand(
			t, datadir, "account", "sign",
			"--id", mnemonic.ID, "--message", "hello world",
		)
		var signature map[string]string
		require.NoError(t, json.Unmarshal(out, &signature))
		require.Equal(
			t,
			"0xae35d9375b015664a7b115a63a4515142b68059b164dd187e0b5232d47ca6968"+
				"5104d05d1c6c58b1fe5842f28459e2ea5bd571c0196f10da25fd2140eeef47e51c",
			signature["signature"],
		)

		out = runCommand(
			t, datadir, "account", "add-watch", "--address", testEvmAddress,
		)
		var watch accountInfo
		require.NoError(t, json.Unmarshal(out, &watch))

		app := newApp()
		app.Writer = &bytes.Buffer{}
		err := app.Run([]string{
			"walletctl", "--datadir", datadir,
			"account", "sign", "--id", watch.ID, "--message", "hello world",
		})
		require.ErrorIs(t, err, domain.ErrSigningNotSupported)
	}
}

func testSyncSourceCommands() func(t *testing.T) {
	return func(t *testing.T) {
		datadir := t.TempDir()
		customURL := "https://rpc.example.com"

		runCommand(
			t, datadir, "syncsource", "add",
			"--chain", "ethereum", "--url", customURL, "--auth", "token",
		)

		out := runCommand(t, datadir, "syncsource", "list", "--chain", "ethereum")
		var sources []syncSourceInfo
		require.NoError(t, json.Unmarshal(out, &sources))
		require.NotEmpty(t, sources)

		custom := sources[len(sources)-1]
		require.Equal(t, customURL, custom.URL)
		require.True(t, custom.Custom)
		require.True(t, custom.Selected)
		require.True(t, custom.HasAuth)

		backupFile := filepath.Join(t.TempDir(), "backup.json")
		runCommand(
			t, datadir, "syncsource", "export",
			"--passphrase", "secret", "--out", backupFile,
		)

		runCommand(
			t, datadir, "syncsource", "delete",
			"--chain", "ethereum", "--url", customURL,
		)
		out = runCommand(t, datadir, "syncsource", "list", "--chain", "ethereum")
		require.NoError(t, json.Unmarshal(out, &sources))
		for _, s := range sources {
			require.NotEqual(t, customURL, s.URL)
		}

		runCommand(
			t, datadir, "syncsource", "import",
			"--passphrase", "secret", "--in", backupFile,
		)
		out = runCommand(t, datadir, "syncsource", "list", "--chain", "ethereum")
		require.NoError(t, json.Unmarshal(out, &sources))
		custom = sources[len(sources)-1]
		require.Equal(t, customURL, custom.URL)
		require.True(t, custom.HasAuth)
	}
}

func testInvalidDbType() func(t *testing.T) {
	return func(t *testing.T) {
		setEnvs(t)

		app := newApp()
		app.Writer = &bytes.Buffer{}
		err := app.Run([]string{
			"walletctl", "--datadir", t.TempDir(), "--db", "sqlite", "chain", "list",
		})
		require.Error(t, err)
	}
}

func runCommand(t *testing.T, datadir string, args ...string) []byte {
	t.Helper()
	setEnvs(t)

	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out

	cmd := append([]string{"walletctl", "--datadir", datadir}, args...)
	require.NoError(t, app.Run(cmd))
	return out.Bytes()
}

// setEnvs makes sure the variables set from the global flags are restored
// once the test is over.
func setEnvs(t *testing.T) {
	for _, env := range flagEnvs {
		t.Setenv(env, "")
	}
}
