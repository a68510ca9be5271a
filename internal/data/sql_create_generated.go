package data

const SQLCreate = `
PRAGMA encoding = 'UTF-8';

CREATE TABLE IF NOT EXISTS Counties
(
    fips        INTEGER PRIMARY KEY,
    county_name TEXT,
    state_abbr  TEXT
);

CREATE TABLE IF NOT EXISTS Demographics
(
    demo_id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    fips                    INTEGER NOT NULL,
    pop_total               INTEGER,
    pop_white               INTEGER,
    pop_black               INTEGER,
    pop_hispanic            INTEGER,
    income_median_household REAL,
    FOREIGN KEY (fips) REFERENCES Counties (fips)
);

CREATE TABLE IF NOT EXISTS Housing
(
    housing_id        INTEGER PRIMARY KEY AUTOINCREMENT,
    fips              INTEGER NOT NULL,
    rent_median_gross REAL,
    rent_burdened_pct REAL,
    FOREIGN KEY (fips) REFERENCES Counties (fips)
);

CREATE TABLE IF NOT EXISTS Evictions
(
    eviction_id   INTEGER PRIMARY KEY AUTOINCREMENT,
    fips          INTEGER NOT NULL,
    evict_year    INTEGER,
    evict_filings INTEGER,
    FOREIGN KEY (fips) REFERENCES Counties (fips)
);

CREATE INDEX IF NOT EXISTS idx_demographics_fips ON Demographics (fips);
CREATE INDEX IF NOT EXISTS idx_housing_fips ON Housing (fips);
CREATE INDEX IF NOT EXISTS idx_evictions_fips ON Evictions (fips);
`
