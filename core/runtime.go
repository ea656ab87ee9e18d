/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "time"

// Version of ndnwire.
var Version string

// BuildTime contains the timestamp of when this version of ndnwire was built.
var BuildTime string

// StartTimestamp contains the time the application was started.
var StartTimestamp time.Time
