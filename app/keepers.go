package app

import (
	"fmt"
	"reflect"

	"github.com/btcsuite/btcd/btcec/v2"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/cometbft/cometbft/libs/log"

	"github.com/uniongov/union-core/utils"
	accessKeeper "github.com/uniongov/union-core/x/access/keeper"
	groupKeeper "github.com/uniongov/union-core/x/group/keeper"
	nestedKeeper "github.com/uniongov/union-core/x/nested/keeper"
	nestedTypes "github.com/uniongov/union-core/x/nested/types"
	permissionKeeper "github.com/uniongov/union-core/x/permission/keeper"
	permissionTypes "github.com/uniongov/union-core/x/permission/types"
	sharesKeeper "github.com/uniongov/union-core/x/shares/keeper"
	tokenKeeper "github.com/uniongov/union-core/x/token/keeper"
	votingKeeper "github.com/uniongov/union-core/x/voting/keeper"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

// KeeperCache holds every keeper of a union, indexed by type
type KeeperCache struct {
	repository map[string]any
}

// NewKeeperCache returns an empty keeper cache
func NewKeeperCache() *KeeperCache {
	return &KeeperCache{
		repository: make(map[string]any),
	}
}

// GetKeeper returns the keeper of type T. Panics if it has not been set.
func GetKeeper[T any](k *KeeperCache) *T {
	if reflect.TypeOf(*new(T)).Kind() == reflect.Ptr {
		panic(fmt.Sprintf("the generic parameter for %s cannot be a reference type", fullTypeName[T]()))
	}
	key := fullTypeName[T]()
	keeper, ok := k.repository[key].(*T)
	if !ok {
		panic(fmt.Sprintf("keeper %s not found", key))
	}
	return keeper
}

// SetKeeper stores a reference to the keeper
func SetKeeper[T any](k *KeeperCache, keeper T) {
	if reflect.TypeOf(keeper).Kind() != reflect.Ptr {
		panic(fmt.Sprintf("keeper %s must be a reference type", fullTypeName[T]()))
	}

	k.repository[fullTypeName[T]()] = keeper
}

func fullTypeName[T any]() string {
	keeperType := reflect.TypeOf(*new(T))

	if keeperType.Kind() == reflect.Ptr {
		keeperType = keeperType.Elem()
	}

	return keeperType.PkgPath() + "." + keeperType.Name()
}

func initTokenKeeper(db dbm.DB, logger log.Logger) *tokenKeeper.Keeper {
	tokenK := tokenKeeper.NewKeeper(db, logger)
	return &tokenK
}

func initGroupKeeper(db dbm.DB, keepers *KeeperCache, logger log.Logger) *groupKeeper.Keeper {
	return groupKeeper.NewKeeper(db, GetKeeper[tokenKeeper.Keeper](keepers), logger)
}

func initSharesKeeper(db dbm.DB, keepers *KeeperCache, signer *btcec.PrivateKey, clock utils.Clock, logger log.Logger) *sharesKeeper.Keeper {
	sharesK := sharesKeeper.NewKeeper(db, GetKeeper[groupKeeper.Keeper](keepers), signer, clock, logger)
	return &sharesK
}

func initAccessKeeper(db dbm.DB, keepers *KeeperCache, logger log.Logger) *accessKeeper.Keeper {
	accessK := accessKeeper.NewKeeper(db, GetKeeper[permissionKeeper.Keeper](keepers), GetKeeper[groupKeeper.Keeper](keepers), logger)
	return &accessK
}

func initVotingKeeper(db dbm.DB, keepers *KeeperCache, scheduler votingTypes.Scheduler, executor votingTypes.Executor, publisher votingTypes.Publisher, clock utils.Clock, logger log.Logger) *votingKeeper.Keeper {
	votingK := votingKeeper.NewKeeper(
		db,
		GetKeeper[tokenKeeper.Keeper](keepers),
		GetKeeper[groupKeeper.Keeper](keepers),
		GetKeeper[permissionKeeper.Keeper](keepers),
		scheduler,
		executor,
		publisher,
		clock,
		logger,
	)
	return &votingK
}

func initNestedKeeper(db dbm.DB, keepers *KeeperCache, resolver nestedTypes.PeerResolver, publisher nestedTypes.Publisher, clock utils.Clock, logger log.Logger) *nestedKeeper.Keeper {
	nestedK := nestedKeeper.NewKeeper(
		db,
		GetKeeper[tokenKeeper.Keeper](keepers),
		GetKeeper[groupKeeper.Keeper](keepers),
		resolver,
		publisher,
		clock,
		logger,
	)
	return &nestedK
}

// setHooks wires the hooks between keepers. Has to run after all keepers are created.
func setHooks(keepers *KeeperCache) {
	GetKeeper[groupKeeper.Keeper](keepers).SetHooks(GetKeeper[sharesKeeper.Keeper](keepers).Hooks())

	GetKeeper[permissionKeeper.Keeper](keepers).SetHooks(permissionTypes.NewMultiPermissionHooks(
		GetKeeper[accessKeeper.Keeper](keepers).Hooks(),
		GetKeeper[votingKeeper.Keeper](keepers).Hooks(),
	))
}
