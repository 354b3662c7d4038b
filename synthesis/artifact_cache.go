package synthesis

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
)

// ArtifactCacheFileName is the name of the file used to store the conversion input hash.
const ArtifactCacheFileName = ".socforge-artifact-hash"

// ArtifactCache stores the hash of a conversion's inputs along with the artifact it produced. It allows a later run
// to skip re-invoking the synthesis toolchain when the inputs are unchanged and the artifact still exists.
type ArtifactCache struct {
	// Hash is the hash of the conversion inputs, as computed by ComputeSourceHash.
	Hash string `json:"hash"`

	// Artifact is the path of the artifact the conversion produced.
	Artifact string `json:"artifact"`

	// Timestamp is when the hash was computed.
	Timestamp time.Time `json:"timestamp"`
}

// ComputeSourceHash computes a SHA3-256 hash over the top entity name and the name and contents of every source, in
// order. Source order affects the hash, matching the order-sensitivity of the conversion scripts the sources feed.
func ComputeSourceHash(topEntity string, sources []string) (string, error) {
	hasher := sha3.New256()
	hasher.Write([]byte(topEntity))
	for _, source := range sources {
		data, err := os.ReadFile(source)
		if err != nil {
			return "", err
		}
		hasher.Write([]byte(filepath.Base(source)))
		hasher.Write(data)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// LoadArtifactCache loads the artifact cache from the specified directory. Returns nil if the cache file does not
// exist or cannot be parsed.
func LoadArtifactCache(directory string) *ArtifactCache {
	cachePath := filepath.Join(directory, ArtifactCacheFileName)
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil
	}

	var cache ArtifactCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil
	}

	return &cache
}

// SaveArtifactCache saves the artifact cache to the specified directory. Returns an error if the cache cannot be
// written.
func SaveArtifactCache(directory string, cache *ArtifactCache) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return err
	}

	cachePath := filepath.Join(directory, ArtifactCacheFileName)
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath, data, 0644)
}

// ConvertWithCache behaves like Convert but consults an artifact cache stored in cacheDirectory first. If the
// conversion inputs hash to the same value as the previous run and the previously produced artifact still exists, the
// toolchain is not invoked and the cached artifact path is returned. After a successful conversion the cache is
// refreshed. Cache read/write failures never fail the conversion; they only force the toolchain to run.
func ConvertWithCache(config *Config, sources []string, cacheDirectory string) (string, string, error) {
	platformConfig, err := config.GetPlatformConfig()
	if err != nil {
		return "", "", err
	}

	// Compute the hash of the conversion inputs. If any source is unreadable, fall through to the platform so it can
	// report the failure on its own terms.
	currentHash, hashErr := ComputeSourceHash(platformConfig.GetTopEntity(), sources)
	if hashErr == nil {
		if cached := LoadArtifactCache(cacheDirectory); cached != nil && cached.Hash == currentHash {
			if _, statErr := os.Stat(cached.Artifact); statErr == nil {
				return cached.Artifact, "", nil
			}
		}
	}

	artifact, toolOutput, err := platformConfig.Convert(sources)
	if err != nil {
		return "", toolOutput, err
	}

	if hashErr == nil {
		// Best effort refresh; an unwritable cache directory must not fail a successful conversion.
		_ = SaveArtifactCache(cacheDirectory, &ArtifactCache{
			Hash:      currentHash,
			Artifact:  artifact,
			Timestamp: time.Now(),
		})
	}
	return artifact, toolOutput, nil
}
