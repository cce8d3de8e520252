package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m3u-helper/config"
)

const testM3U = `#EXTM3U
#EXTINF:-1 group-title="x",CCTV-1高清
http://a
#EXTINF:-1 ,湖南卫视
http://b
#EXTINF:-1 ,上海东方
http://c
`

func setupDir(t *testing.T, files map[string]string) string {
	for _, key := range []string{"M3U_HELPER_CHECK", "M3U_HELPER_SORT", "M3U_HELPER_VERBOSE", "M3U_HELPER_DIR"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootFormatsDirectory(t *testing.T) {
	dir := setupDir(t, map[string]string{"channels.m3u": testM3U})

	out, err := execute(t, "--dir", dir, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "channels_formated.m3u: 3 channels")
	assert.Contains(t, out, "央视频道 1, 卫视频道 1, 省级频道 1")

	_, err = os.Stat(filepath.Join(dir, "channels_formated.m3u"))
	assert.NoError(t, err)
}

func TestFormatCommandWithFiles(t *testing.T) {
	dir := setupDir(t, map[string]string{
		"a.m3u": testM3U,
		"b.m3u": testM3U,
	})

	out, err := execute(t, "format", "--dir", dir, "-q", "b.m3u")
	require.NoError(t, err)
	assert.Contains(t, out, "b_formated.m3u")

	_, err = os.Stat(filepath.Join(dir, "a_formated.m3u"))
	assert.True(t, os.IsNotExist(err))

	out, err = execute(t, "format", "--dir", dir, "-q", "b.m3u")
	require.NoError(t, err)
	assert.Contains(t, out, "skipped b.m3u")
}

func TestMergeCommandJSON(t *testing.T) {
	dir := setupDir(t, map[string]string{
		"a.m3u":  testM3U,
		"b.m3u8": "#EXTINF:-1,HBO\nhttp://hbo\n",
	})

	out, err := execute(t, "merge", "--dir", dir, "--quiet", "--sort", "--json")
	require.NoError(t, err)

	var result struct {
		Output  string         `json:"output"`
		Written int            `json:"written"`
		Sources []string       `json:"sources"`
		Counts  map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, filepath.Join(dir, config.MergedFileName), result.Output)
	assert.Equal(t, 4, result.Written)
	assert.Len(t, result.Sources, 2)
	assert.Equal(t, 1, result.Counts["cctv"])
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dir := setupDir(t, map[string]string{
		"list.m3u": "#EXTINF:-1,CCTV-5\nhttp://5\n#EXTINF:-1,CCTV-1\nhttp://1\n",
	})
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("sortWithinCategory: true\nverboseConsoleOutput: false\nworkDir: "+dir+"\n"), 0644))

	_, err := execute(t, "format", "--config", cfgPath, "--sort=false")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "list_formated.m3u"))
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n"+
		"#EXTINF:-1 group-title=\"央视频道\",CCTV-5\nhttp://5\n"+
		"#EXTINF:-1 group-title=\"央视频道\",CCTV-1\nhttp://1\n", string(data))
}

func TestInvalidFlagValue(t *testing.T) {
	dir := setupDir(t, nil)

	_, err := execute(t, "format", "--dir", dir, "--check-workers", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestWatchRejectsInvalidSchedule(t *testing.T) {
	dir := setupDir(t, nil)

	_, err := execute(t, "watch", "--dir", dir, "-q", "--cron", "not a schedule")
	assert.Error(t, err)
}
