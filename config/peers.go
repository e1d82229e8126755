package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/spf13/viper"

	union "github.com/uniongov/union-core/types"
)

const peersFileName = "peers"

// Peer is another union reachable over HTTP
type Peer struct {
	ID      union.Principal `mapstructure:"id"`
	Address string          `mapstructure:"address"`
}

// ValidateBasic returns an error if the peer is malformed
func (p Peer) ValidateBasic() error {
	if err := p.ID.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid peer id: %w", err)
	}

	if _, err := url.ParseRequestURI(p.Address); err != nil {
		return fmt.Errorf("invalid address of peer %s: %w", p.ID, err)
	}

	return nil
}

// ReadPeers reads the peers.toml file next to the config file. A missing file yields no peers.
func ReadPeers(v *viper.Viper) ([]Peer, error) {
	peersV := viper.New()
	peersV.SetConfigName(peersFileName)
	peersV.SetConfigType(fileType)
	if used := v.ConfigFileUsed(); used != "" {
		peersV.AddConfigPath(filepath.Dir(used))
	}

	if err := peersV.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, nil
		}

		return nil, err
	}

	var peers []Peer
	if err := peersV.UnmarshalKey("peer", &peers); err != nil {
		return nil, err
	}

	return peers, nil
}

// MergePeers appends the new peers to the configured ones. The first entry for an id wins.
func MergePeers(peers []Peer, newPeers []Peer) []Peer {
	seen := make(map[union.Principal]struct{})
	var merged []Peer
	for _, peer := range append(peers, newPeers...) {
		if _, ok := seen[peer.ID]; ok {
			continue
		}

		seen[peer.ID] = struct{}{}
		merged = append(merged, peer)
	}

	return merged
}
