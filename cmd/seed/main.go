// Command seed creates the parking manager schema and its fixed rows:
// the five card type titles and the built-in guest customer. Optionally
// seeds a demo customer with a vehicle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/config"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/db"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

var schema = []string{
	`create table if not exists cardtype (
		id bigint primary key,
		title text not null)`,
	`create table if not exists customer (
		id bigserial primary key,
		name text not null,
		address text,
		city text,
		phone text,
		email text,
		card_date date,
		card_money double precision,
		card_id bigint not null references cardtype (id))`,
	`create table if not exists vehicle (
		id bigserial primary key,
		reg_num text not null,
		descr text,
		cust_id bigint not null references customer (id))`,
	`create table if not exists transacts (
		id bigserial primary key,
		vehi_id bigint not null references vehicle (id),
		cust_id bigint not null references customer (id),
		started_at timestamptz not null)`,
	`create table if not exists report (
		id bigserial primary key,
		vehicle text not null,
		customer text not null,
		started_at timestamptz not null,
		ended_at timestamptz not null,
		charge double precision not null)`,
}

var cardTitles = map[models.CardType]string{
	models.CardNone:   "No Card Customer",
	models.CardSimple: "Simple Member Card",
	models.CardMonth:  "Month Member Card",
	models.CardYear:   "Year Member Card",
	models.CardCredit: "Credit Card Member",
}

func main() {
	demoName := flag.String("demo_customer", "", "optional demo customer name")
	demoReg := flag.String("demo_reg_num", "DEMO-001", "registration number for the demo vehicle")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	for _, stmt := range schema {
		if _, err := d.Pool.Exec(ctx, stmt); err != nil {
			log.Fatal(err)
		}
	}

	for ct, title := range cardTitles {
		_, err := d.Pool.Exec(ctx, `
			insert into cardtype (id, title) values ($1,$2)
			on conflict (id) do update set title=excluded.title
		`, ct.Stored(), title)
		if err != nil {
			log.Fatal(err)
		}
	}

	// The guest customer absorbs transactions of deleted customers.
	_, err = d.Pool.Exec(ctx, `
		insert into customer (id, name, card_id)
		values ($1, 'Simple Guest', $2)
		on conflict (id) do nothing
	`, repo.GuestCustomerID, models.CardNone.Stored())
	if err != nil {
		log.Fatal(err)
	}

	if *demoName != "" {
		customers := repo.NewCustomersRepo(d.Pool)
		vehicles := repo.NewVehiclesRepo(d.Pool)

		custID, err := customers.Create(ctx, models.Customer{Name: *demoName, CardType: models.CardNone})
		if err != nil {
			log.Fatal(err)
		}
		vehiID, err := vehicles.Create(ctx, models.Vehicle{RegNum: *demoReg, CustomerID: custID})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Seeded demo customer:", custID, "vehicle:", vehiID)
	}

	fmt.Println("Schema and card types are in place")
}
