package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	ledgercore "github.com/mtelahun/account-engine-sub001"
	"github.com/mtelahun/account-engine-sub001/memstore"
)

func main() {
	fmt.Println("Ledger Engine Demo")
	fmt.Println("==================")

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	store := memstore.New()

	graph := ledgercore.NewLedgerGraphService(store, logger)
	engine := ledgercore.NewPostingEngine(store, logger)

	fmt.Println("\nStep 1: creating the general ledger")
	gl, err := graph.CreateGeneralLedger(ctx, ledgercore.NewName("Demo Company"), ledgercore.NewCurrencyCode("USD"))
	if err != nil {
		log.Fatalf("create general ledger: %v", err)
	}
	fmt.Printf("general ledger %s created, root %s\n", gl.ID, gl.RootLedgerID)

	fmt.Println("\nStep 2: building the chart of accounts")
	assets, err := graph.CreateLedger(ctx, gl.RootLedgerID, ledgercore.NewCode("1000"), ledgercore.NewName("Assets"), ledgercore.LedgerIntermediate, nil)
	if err != nil {
		log.Fatalf("create Assets: %v", err)
	}
	cash, err := graph.CreateLedger(ctx, assets.ID, ledgercore.NewCode("1010"), ledgercore.NewName("Cash"), ledgercore.LedgerLeaf, nil)
	if err != nil {
		log.Fatalf("create Cash: %v", err)
	}
	sales, err := graph.CreateLedger(ctx, gl.RootLedgerID, ledgercore.NewCode("4000"), ledgercore.NewName("Sales"), ledgercore.LedgerLeaf, nil)
	if err != nil {
		log.Fatalf("create Sales: %v", err)
	}

	fmt.Println("\nStep 3: opening the general journal")
	journals := ledgercore.NewJournalService(store)
	gj, err := journals.CreateGeneralJournal(ctx, ledgercore.NewName("General Journal"), ledgercore.NewCode("GJ"))
	if err != nil {
		log.Fatalf("create general journal: %v", err)
	}

	fmt.Println("\nStep 4: recording and posting a Dr/Cr transaction")
	amount, err := ledgercore.NewAmount("100.00", ledgercore.NewCurrencyCode("USD"))
	if err != nil {
		log.Fatalf("build amount: %v", err)
	}

	ts := ledgercore.NewTimestamp()
	hdr, _, err := engine.CreateGeneralTransaction(ctx, gj.ID, ts, ledgercore.NewName("cash sale"), []struct {
		LedgerID ledgercore.ID
		XactType ledgercore.XactType
		Amount   ledgercore.Amount
	}{
		{LedgerID: cash.ID, XactType: ledgercore.XactTypeDr, Amount: amount},
		{LedgerID: sales.ID, XactType: ledgercore.XactTypeCr, Amount: amount},
	})
	if err != nil {
		log.Fatalf("create transaction: %v", err)
	}

	posted, err := engine.PostTransaction(ctx, hdr.ID)
	if err != nil {
		log.Fatalf("post transaction: %v", err)
	}
	fmt.Printf("posted=%v\n", posted)

	fmt.Println("\nStep 5: reconstructing journal entries")
	query := ledgercore.NewQueryService(store, logger)
	entries, err := query.JournalEntries(ctx, cash.ID)
	if err != nil {
		log.Fatalf("journal entries: %v", err)
	}
	for _, e := range entries {
		fmt.Printf("%s %s %s\n", e.XactType, e.Amount, e.Ref.Journal)
	}
}
