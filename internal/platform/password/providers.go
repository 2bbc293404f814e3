package password

import "github.com/google/wire"

var ProviderSet = wire.NewSet(NewHasher)
