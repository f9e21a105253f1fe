package transactiondto

type SyncResult struct {
	Fetched  int
	Upserted int
	Linked   int
}
