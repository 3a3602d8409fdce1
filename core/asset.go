package core

import (
	"errors"
	"fmt"
)

// CollateralAsset supported collateral asset with its price feed and custody token
type CollateralAsset struct {
	AssetID string
	Symbol  string
	Feed    PriceFeed
	Token   Token
}

// AssetRegistry immutable ordered set of collateral assets
type AssetRegistry struct {
	assets []*CollateralAsset
	index  map[string]*CollateralAsset
}

// NewAssetRegistry build the registry, order follows assets
func NewAssetRegistry(assets ...*CollateralAsset) (*AssetRegistry, error) {
	if len(assets) == 0 {
		return nil, errors.New("registry: no collateral assets")
	}

	r := &AssetRegistry{
		assets: make([]*CollateralAsset, 0, len(assets)),
		index:  make(map[string]*CollateralAsset, len(assets)),
	}

	for _, a := range assets {
		if a == nil || a.AssetID == "" {
			return nil, errors.New("registry: empty asset id")
		}

		if a.Feed == nil {
			return nil, fmt.Errorf("registry: asset %s has no price feed", a.AssetID)
		}

		if a.Token == nil {
			return nil, fmt.Errorf("registry: asset %s has no custody token", a.AssetID)
		}

		if _, ok := r.index[a.AssetID]; ok {
			return nil, fmt.Errorf("registry: duplicated asset %s", a.AssetID)
		}

		cp := *a
		r.assets = append(r.assets, &cp)
		r.index[a.AssetID] = &cp
	}

	return r, nil
}

// Find lookup asset by id
func (r *AssetRegistry) Find(assetID string) (*CollateralAsset, bool) {
	a, ok := r.index[assetID]
	return a, ok
}

// IDs asset ids in registration order
func (r *AssetRegistry) IDs() []string {
	ids := make([]string, 0, len(r.assets))
	for _, a := range r.assets {
		ids = append(ids, a.AssetID)
	}

	return ids
}

// Each iterate assets in registration order, stop on the first error
func (r *AssetRegistry) Each(fn func(asset *CollateralAsset) error) error {
	for _, a := range r.assets {
		if err := fn(a); err != nil {
			return err
		}
	}

	return nil
}

// Len number of registered assets
func (r *AssetRegistry) Len() int {
	return len(r.assets)
}
