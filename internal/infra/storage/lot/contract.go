package lot

import "github.com/Raorakshith/smartparking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
