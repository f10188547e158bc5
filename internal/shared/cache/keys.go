package cache

import "strconv"

// Chaves dos snapshots decodificados, compartilhadas entre quem escreve
// (market-decoder-worker) e quem lê (market-data-service)

func KeyPrices(marketID int64) string { return "market:prices:" + strconv.FormatInt(marketID, 10) }
func KeyComplete(marketID int64) string { return "market:complete:" + strconv.FormatInt(marketID, 10) }

const KeyMarketList = "market:list:latest"
