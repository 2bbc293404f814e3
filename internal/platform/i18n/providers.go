package i18n

import "github.com/google/wire"

var ProviderSet = wire.NewSet(NewTranslator)
